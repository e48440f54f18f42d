// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
)

func newBaseSkeletonBuilder(t *testing.T) *SkeletonBuilder {
	t.Helper()
	builder := NewSkeletonBuilder("origin", mmath.NewTransform())
	if err := builder.BuildBaseSkeleton(NewSkeletonBuilderParams()); err != nil {
		t.Fatalf("build base skeleton failed: %v", err)
	}
	if err := builder.ApplyHandBaseRotations(); err != nil {
		t.Fatalf("apply hand base rotations failed: %v", err)
	}
	return builder
}

func TestBuildBaseSkeletonPlacesHipsAndLeftHandChain(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	sk := builder.Skeleton()

	if sk.Len() != 21 {
		t.Fatalf("bone count mismatch: got=%d want=%d", sk.Len(), 21)
	}
	if sk.Root() == nil || sk.Root().Bone() != humanoid.Hips {
		t.Fatalf("root should be hips: got=%v", sk.Root())
	}
	if !sk.Get(humanoid.Hips).LocalPosition().NearEquals(mmath.NewVec3(0, 0.8, 0), 1e-12) {
		t.Fatalf("hips position mismatch: got=%v", sk.Get(humanoid.Hips).LocalPosition())
	}

	chain, err := sk.Ancestors(humanoid.LeftHand)
	if err != nil {
		t.Fatalf("ancestors failed: %v", err)
	}
	want := []humanoid.BoneId{
		humanoid.Hips,
		humanoid.Spine,
		humanoid.Chest,
		humanoid.LeftShoulder,
		humanoid.LeftUpperArm,
		humanoid.LeftLowerArm,
		humanoid.LeftHand,
	}
	if len(chain) != len(want) {
		t.Fatalf("chain length mismatch: got=%d want=%d", len(chain), len(want))
	}
	for i, node := range chain {
		if node.Bone() != want[i] {
			t.Fatalf("chain mismatch: index=%d got=%s want=%s", i, node.Bone(), want[i])
		}
	}
	if err := sk.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestBuildBaseSkeletonPutsLeftSideOnNegativeX(t *testing.T) {
	sk := NewSkeletonBuilder("origin", mmath.NewTransform())
	if err := sk.BuildBaseSkeleton(NewSkeletonBuilderParams()); err != nil {
		t.Fatalf("build base skeleton failed: %v", err)
	}

	left, err := sk.Skeleton().ModelTransform(humanoid.LeftHand)
	if err != nil {
		t.Fatalf("model transform failed: %v", err)
	}
	right, err := sk.Skeleton().ModelTransform(humanoid.RightHand)
	if err != nil {
		t.Fatalf("model transform failed: %v", err)
	}
	if !left.Position.NearEquals(mmath.NewVec3(-0.7, 1.3, 0), 1e-9) {
		t.Fatalf("left hand position mismatch: got=%v", left.Position)
	}
	if !right.Position.NearEquals(mmath.NewVec3(0.7, 1.3, 0), 1e-9) {
		t.Fatalf("right hand position mismatch: got=%v", right.Position)
	}

	toes := sk.Skeleton().Get(humanoid.LeftToes)
	if !toes.LocalPosition().NearEquals(mmath.NewVec3(0, -0.1, 0.1), 1e-12) {
		t.Fatalf("toes position mismatch: got=%v", toes.LocalPosition())
	}
}

func TestBuildBaseSkeletonTwiceFailsWithDuplicate(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	err := builder.BuildBaseSkeleton(NewSkeletonBuilderParams())
	if !skeleton.IsDuplicateBoneError(err) {
		t.Fatalf("expected duplicate bone error: got=%v", err)
	}
	if builder.Skeleton().Len() != 21 {
		t.Fatalf("second build should not add bones: len=%d", builder.Skeleton().Len())
	}
}

func TestApplyHandBaseRotations(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	left := builder.Skeleton().Get(humanoid.LeftHand).LocalRotation()
	right := builder.Skeleton().Get(humanoid.RightHand).LocalRotation()

	if !left.NearEquals(mmath.NewQuaternionFromDegrees(0, 180, 180), 1e-12) {
		t.Fatalf("left hand rotation mismatch: got=%v", left)
	}
	if !right.NearEquals(mmath.NewQuaternion(), 1e-12) {
		t.Fatalf("right hand rotation mismatch: got=%v", right)
	}
}

func TestUpdateRotationRejectsUnknownBone(t *testing.T) {
	builder := NewSkeletonBuilder("origin", mmath.NewTransform())
	err := builder.UpdateRotation(humanoid.LeftHand, mmath.NewQuaternion())
	if !skeleton.IsUnknownBoneError(err) {
		t.Fatalf("expected unknown bone error: got=%v", err)
	}
}

func TestAddRejectsUnknownParentWithoutCreatingNode(t *testing.T) {
	builder := NewSkeletonBuilder("origin", mmath.NewTransform())
	err := builder.Add(humanoid.LeftThumbProximal, humanoid.LeftHand, mmath.ZeroVec3(), mmath.NewQuaternion())
	if !skeleton.IsUnknownParentError(err) {
		t.Fatalf("expected unknown parent error: got=%v", err)
	}
	if builder.Skeleton().Has(humanoid.LeftThumbProximal) {
		t.Fatalf("failed add should not leave a node")
	}
}

func TestGraftHandBonesBeforeBaseSkeletonFails(t *testing.T) {
	builder := NewSkeletonBuilder("origin", mmath.NewTransform())
	_, err := builder.GraftHandBones(humanoid.Left, newFakeHandSource())
	if !skeleton.IsUnknownParentError(err) {
		t.Fatalf("expected unknown parent error: got=%v", err)
	}
	if builder.Skeleton().Len() != 0 {
		t.Fatalf("failed graft should not add bones: len=%d", builder.Skeleton().Len())
	}
}

func TestGraftHandBonesAddsAllSlotsUnderParents(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	source := newFakeHandSource()

	for _, side := range humanoid.Sides {
		report, err := builder.GraftHandBones(side, source)
		if err != nil {
			t.Fatalf("graft failed: side=%s err=%v", side, err)
		}
		if len(report.Grafted) != humanoid.HandSlotCount || len(report.Skipped) != 0 {
			t.Fatalf("graft report mismatch: grafted=%d skipped=%d", len(report.Grafted), len(report.Skipped))
		}
	}

	sk := builder.Skeleton()
	if sk.Len() != 21+2*humanoid.HandSlotCount {
		t.Fatalf("bone count mismatch: got=%d", sk.Len())
	}
	for _, side := range humanoid.Sides {
		for _, slot := range humanoid.HandBoneSlots(side) {
			node := sk.Get(slot.Bone)
			if node == nil {
				t.Fatalf("grafted bone missing: %s", slot.Bone)
			}
			if node.Parent() == nil || node.Parent().Bone() != slot.Parent {
				t.Fatalf("parent mismatch: bone=%s want=%s", slot.Bone, slot.Parent)
			}
			if humanoid.RequiresParentComposition(slot.Vendor) {
				continue
			}
			bind := source.BindLocalTransform(side, slot.Vendor)
			if !node.LocalTransform().NearEquals(bind, 1e-12) {
				t.Fatalf("bind pose mismatch: bone=%s got=%v want=%v", slot.Bone, node.LocalTransform(), bind)
			}
		}
	}
	if err := sk.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestGraftHandBonesComposesCollapsedJoints(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	source := newFakeHandSource()
	source.live[humanoid.Left][humanoid.HandThumb1] = mmath.NewTransformFrom(
		mmath.NewVec3(0.1, 0, 0),
		mmath.NewQuaternionFromDegrees(0, 0, 90),
	)
	source.bind[humanoid.Left][humanoid.HandThumb2] = mmath.NewTransformFrom(
		mmath.NewVec3(0.05, 0, 0),
		mmath.NewQuaternion(),
	)
	source.live[humanoid.Left][humanoid.HandPinky0] = mmath.NewTransformFrom(
		mmath.NewVec3(0, 0.02, 0),
		mmath.NewQuaternionFromDegrees(90, 0, 0),
	)
	source.bind[humanoid.Left][humanoid.HandPinky1] = mmath.NewTransformFrom(
		mmath.NewVec3(0, 0.04, 0),
		mmath.NewQuaternionFromDegrees(0, 0, 90),
	)

	if _, err := builder.GraftHandBones(humanoid.Left, source); err != nil {
		t.Fatalf("graft failed: %v", err)
	}

	thumb := builder.Skeleton().Get(humanoid.LeftThumbIntermediate)
	if !thumb.LocalPosition().NearEquals(mmath.NewVec3(0.1, 0.05, 0), 1e-12) {
		t.Fatalf("thumb position mismatch: got=%v", thumb.LocalPosition())
	}
	if !thumb.LocalRotation().NearEquals(mmath.NewQuaternionFromDegrees(0, 0, 90), 1e-12) {
		t.Fatalf("thumb rotation mismatch: got=%v", thumb.LocalRotation())
	}

	// X軸90度でYがZへ回る。
	little := builder.Skeleton().Get(humanoid.LeftLittleProximal)
	if !little.LocalPosition().NearEquals(mmath.NewVec3(0, 0.02, 0.04), 1e-12) {
		t.Fatalf("little position mismatch: got=%v", little.LocalPosition())
	}
	wantRotation := mmath.NewQuaternionFromDegrees(90, 0, 0).Muled(mmath.NewQuaternionFromDegrees(0, 0, 90))
	if !little.LocalRotation().NearEquals(wantRotation, 1e-12) {
		t.Fatalf("little rotation mismatch: got=%v want=%v", little.LocalRotation(), wantRotation)
	}
}

func TestGraftHandBonesIsIdempotentForSameFrame(t *testing.T) {
	source := newFakeHandSource()
	first := newBaseSkeletonBuilder(t)
	second := newBaseSkeletonBuilder(t)
	for _, side := range humanoid.Sides {
		if _, err := first.GraftHandBones(side, source); err != nil {
			t.Fatalf("first graft failed: %v", err)
		}
		if _, err := second.GraftHandBones(side, source); err != nil {
			t.Fatalf("second graft failed: %v", err)
		}
	}

	for _, node := range first.Skeleton().Bones() {
		other := second.Skeleton().Get(node.Bone())
		if other == nil {
			t.Fatalf("bone missing in second skeleton: %s", node.Bone())
		}
		if !node.LocalTransform().NearEquals(other.LocalTransform(), 0) {
			t.Fatalf("local transform mismatch: bone=%s", node.Bone())
		}
	}
}

func TestGraftHandBonesSkipsSlotsBeyondJointCount(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	source := newFakeHandSource()
	source.jointCount[humanoid.Right] = 10

	report, err := builder.GraftHandBones(humanoid.Right, source)
	if err != nil {
		t.Fatalf("graft failed: %v", err)
	}
	if len(report.Grafted) != 7 || len(report.Skipped) != 8 {
		t.Fatalf("report mismatch: grafted=%d skipped=%d", len(report.Grafted), len(report.Skipped))
	}
	for _, skipped := range report.Skipped {
		if int(skipped.Joint) < 10 {
			t.Fatalf("joint within count should not be skipped: %s", skipped.Joint)
		}
		if builder.Skeleton().Has(skipped.Bone) {
			t.Fatalf("skipped bone should be absent: %s", skipped.Bone)
		}
		if skipped.JointCount != 10 || skipped.Side != humanoid.Right {
			t.Fatalf("skipped detail mismatch: %v", skipped)
		}
	}
	if !builder.Skeleton().Has(humanoid.RightMiddleProximal) {
		t.Fatalf("middle proximal should be grafted")
	}
	if builder.Skeleton().Has(humanoid.RightMiddleIntermediate) {
		t.Fatalf("middle intermediate should be skipped")
	}
}

func TestGraftHandBonesSkipsCompositionWithMissingParent(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	source := newFakeHandSource()
	source.parents[humanoid.Left][humanoid.HandPinky1] = 40

	report, err := builder.GraftHandBones(humanoid.Left, source)
	if err != nil {
		t.Fatalf("graft failed: %v", err)
	}
	if builder.Skeleton().Has(humanoid.LeftLittleProximal) {
		t.Fatalf("little proximal should be skipped")
	}
	if len(report.Skipped) != 3 || len(report.Grafted) != humanoid.HandSlotCount-3 {
		t.Fatalf("report mismatch: grafted=%d skipped=%d", len(report.Grafted), len(report.Skipped))
	}
	if !IsInsufficientJointDataError(report.Skipped[0]) || report.Skipped[0].Joint != humanoid.HandPinky1 {
		t.Fatalf("first skipped entry mismatch: %v", report.Skipped[0])
	}
	// 親が無いので子も移植できない。
	for _, bone := range []humanoid.BoneId{humanoid.LeftLittleIntermediate, humanoid.LeftLittleDistal} {
		if builder.Skeleton().Has(bone) {
			t.Fatalf("descendant of skipped slot should be absent: %s", bone)
		}
	}
	if err := builder.Skeleton().Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestBuildRigDescriptionReturnsSameSnapshot(t *testing.T) {
	builder := newBaseSkeletonBuilder(t)
	first := builder.BuildRigDescription()
	second := builder.BuildRigDescription()
	if first != second {
		t.Fatalf("rig description should be built once")
	}
	bones := first.SkeletonBones()
	if len(bones) != builder.Skeleton().Len()+1 || bones[0].Name != "origin" {
		t.Fatalf("skeleton bones mismatch: len=%d first=%v", len(bones), bones[0])
	}
}

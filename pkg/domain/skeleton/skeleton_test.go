// 指示: miu200521358
package skeleton

import (
	"math/rand"
	"testing"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/merr"
)

func TestSkeletonRandomTreesHaveSingleRootAndReachableNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(20261019))
	for trial := 0; trial < 50; trial++ {
		ids := rng.Perm(humanoid.BoneCount)
		count := 1 + rng.Intn(humanoid.BoneCount)
		s := NewSkeleton("origin", mmath.NewTransform())

		if _, err := s.AddRoot(humanoid.BoneId(ids[0]), mmath.NewVec3(0, 1, 0), mmath.NewQuaternion()); err != nil {
			t.Fatalf("add root failed: %v", err)
		}
		for i := 1; i < count; i++ {
			parent := humanoid.BoneId(ids[rng.Intn(i)])
			position := mmath.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
			if _, err := s.Add(humanoid.BoneId(ids[i]), parent, position, mmath.NewQuaternion()); err != nil {
				t.Fatalf("add failed: trial=%d index=%d err=%v", trial, i, err)
			}
		}

		if s.Len() != count {
			t.Fatalf("len mismatch: got=%d want=%d", s.Len(), count)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("validate failed: trial=%d err=%v", trial, err)
		}
		roots := 0
		for _, node := range s.Bones() {
			if node.IsRoot() {
				roots++
			}
			chain, err := s.Ancestors(node.Bone())
			if err != nil {
				t.Fatalf("ancestors failed: %v", err)
			}
			if chain[0] != s.Root() || chain[len(chain)-1] != node {
				t.Fatalf("chain should run from root to node: bone=%s", node.Bone())
			}
		}
		if roots != 1 {
			t.Fatalf("root count mismatch: got=%d", roots)
		}
	}
}

func TestSkeletonAddRejectsUnknownParent(t *testing.T) {
	s := NewSkeleton("origin", mmath.NewTransform())
	_, err := s.Add(humanoid.LeftThumbProximal, humanoid.LeftHand, mmath.ZeroVec3(), mmath.NewQuaternion())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsUnknownParentError(err) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if merr.ExtractErrorID(err) != ErrorIDUnknownParent {
		t.Fatalf("error id mismatch: got=%s", merr.ExtractErrorID(err))
	}
	if s.Has(humanoid.LeftThumbProximal) || s.Len() != 0 {
		t.Fatalf("failed add must not leave a disconnected node")
	}
}

func TestSkeletonRejectsDuplicateAndSecondRoot(t *testing.T) {
	s := NewSkeleton("origin", mmath.NewTransform())
	if _, err := s.AddRoot(humanoid.Hips, mmath.ZeroVec3(), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	if _, err := s.AddRoot(humanoid.Spine, mmath.ZeroVec3(), mmath.NewQuaternion()); err == nil {
		t.Fatalf("second root should fail")
	}
	if _, err := s.Add(humanoid.Hips, humanoid.Hips, mmath.ZeroVec3(), mmath.NewQuaternion()); !IsDuplicateBoneError(err) {
		t.Fatalf("duplicate should fail: %v", err)
	}
	if _, err := s.Add(humanoid.BoneNone, humanoid.Hips, mmath.ZeroVec3(), mmath.NewQuaternion()); err == nil {
		t.Fatalf("invalid bone id should fail")
	}
}

func TestSkeletonSetRotation(t *testing.T) {
	s := NewSkeleton("origin", mmath.NewTransform())
	if _, err := s.AddRoot(humanoid.Hips, mmath.ZeroVec3(), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	rotation := mmath.NewQuaternionFromDegrees(0, 90, 0)
	if err := s.SetRotation(humanoid.Hips, rotation); err != nil {
		t.Fatalf("set rotation failed: %v", err)
	}
	if !s.Get(humanoid.Hips).LocalRotation().Equals(rotation) {
		t.Fatalf("rotation was not applied")
	}
	err := s.SetRotation(humanoid.Head, rotation)
	if !IsUnknownBoneError(err) {
		t.Fatalf("unknown bone should fail: %v", err)
	}
}

func TestSkeletonSetPosition(t *testing.T) {
	s := NewSkeleton("origin", mmath.NewTransform())
	if _, err := s.AddRoot(humanoid.Hips, mmath.ZeroVec3(), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	position := mmath.NewVec3(0, 0.9, 0.1)
	if err := s.SetPosition(humanoid.Hips, position); err != nil {
		t.Fatalf("set position failed: %v", err)
	}
	if got := s.Get(humanoid.Hips).LocalPosition(); !got.NearEquals(position, 1e-12) {
		t.Fatalf("position mismatch: got=%v want=%v", got, position)
	}
	if err := s.SetPosition(humanoid.LeftHand, position); !IsUnknownBoneError(err) {
		t.Fatalf("unknown bone should fail: %v", err)
	}
}

func TestSkeletonWorldTransformComposesChain(t *testing.T) {
	origin := mmath.NewTransformFrom(mmath.NewVec3(10, 0, 0), mmath.NewQuaternion())
	s := NewSkeleton("origin", origin)
	if _, err := s.AddRoot(humanoid.Hips, mmath.NewVec3(0, 1, 0), mmath.NewQuaternionFromDegrees(0, 0, 90)); err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	if _, err := s.Add(humanoid.Spine, humanoid.Hips, mmath.NewVec3(1, 0, 0), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	model, err := s.ModelTransform(humanoid.Spine)
	if err != nil {
		t.Fatalf("model transform failed: %v", err)
	}
	if !model.Position.NearEquals(mmath.NewVec3(0, 2, 0), 1e-9) {
		t.Fatalf("model position mismatch: got=%v", model.Position)
	}
	world, err := s.WorldTransform(humanoid.Spine)
	if err != nil {
		t.Fatalf("world transform failed: %v", err)
	}
	if !world.Position.NearEquals(mmath.NewVec3(10, 2, 0), 1e-9) {
		t.Fatalf("world position mismatch: got=%v", world.Position)
	}
}

func TestRigDescriptionSnapshot(t *testing.T) {
	s := NewSkeleton("HandPoseTransfer", mmath.NewTransform())
	if _, err := s.AddRoot(humanoid.Hips, mmath.NewVec3(0, 0.8, 0), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	if _, err := s.Add(humanoid.Spine, humanoid.Hips, mmath.NewVec3(0, 0.2, 0), mmath.NewQuaternion()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	rig := NewRigDescription(s)
	bones := rig.SkeletonBones()
	if len(bones) != 3 {
		t.Fatalf("skeleton bone count mismatch: got=%d", len(bones))
	}
	if bones[0].Name != "HandPoseTransfer" || bones[1].Name != "Hips" || bones[2].Name != "Spine" {
		t.Fatalf("skeleton bone order mismatch: %v", bones)
	}
	if !bones[1].Position.Equals(mmath.NewVec3(0, 0.8, 0)) {
		t.Fatalf("hips position mismatch: got=%v", bones[1].Position)
	}

	bones[1].Name = "mutated"
	if again := rig.SkeletonBones(); again[1].Name != "Hips" {
		t.Fatalf("accessor should return a copy")
	}
	if err := s.SetRotation(humanoid.Spine, mmath.NewQuaternionFromDegrees(45, 0, 0)); err != nil {
		t.Fatalf("set rotation failed: %v", err)
	}
	spine, ok := rig.SkeletonBone("Spine")
	if !ok || !spine.Rotation.Equals(mmath.NewQuaternion()) {
		t.Fatalf("snapshot should not follow later skeleton edits: %v", spine.Rotation)
	}

	humans := rig.HumanBones()
	if len(humans) != 2 || humans[0].HumanName != "Hips" || humans[1].BoneName != "Spine" {
		t.Fatalf("human bones mismatch: %v", humans)
	}
	if name, ok := rig.DisplayName(humanoid.Spine); !ok || name != "Spine" {
		t.Fatalf("display name mismatch: %s %v", name, ok)
	}
	if rig.HasBone(humanoid.Head) {
		t.Fatalf("head is not part of the rig")
	}
	tuning := rig.Tuning()
	if tuning.ArmStretch != 0.05 || tuning.LegStretch != 0.05 || tuning.UpperArmTwist != 0.5 ||
		tuning.LowerLegTwist != 0.5 || tuning.FeetSpacing != 0 || tuning.HasTranslationDoF {
		t.Fatalf("tuning mismatch: %+v", tuning)
	}

	doc := rig.Document()
	if doc.ID != rig.ID().String() || len(doc.SkeletonBones) != 3 || len(doc.HumanBones) != 2 {
		t.Fatalf("document mismatch: %+v", doc)
	}
	if len(doc.SkeletonBones[1].Rotation) != 4 || doc.SkeletonBones[1].Rotation[3] != 1 {
		t.Fatalf("rotation should be [x y z w]: %v", doc.SkeletonBones[1].Rotation)
	}
}

func TestMustCopyDoesNotAliasNestedSlices(t *testing.T) {
	src := [][]float64{{1, 2}, {3}}
	copied := mustCopy(src)
	copied[0][0] = -1
	if src[0][0] != 1 {
		t.Fatalf("nested slice should not be shared: got=%v", src[0][0])
	}
	if len(copied) != 2 || copied[1][0] != 3 {
		t.Fatalf("copy mismatch: got=%v", copied)
	}
}

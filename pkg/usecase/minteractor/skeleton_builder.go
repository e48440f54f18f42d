// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// SkeletonBuilderParams は合成スケルトンの各部長さを表す。
// HeadLength, Hand, Toe は設定互換のため保持するが、固定レイアウトでは参照しない。
type SkeletonBuilderParams struct {
	HipsHeight  float64
	HipsLength  float64
	SpineLength float64
	ChestLength float64
	NeckLength  float64
	HeadLength  float64
	Shoulder    float64
	UpperArm    float64
	LowerArm    float64
	Hand        float64
	LegDistance float64
	UpperLeg    float64
	LowerLeg    float64
	Foot        float64
	Toe         float64
}

// NewSkeletonBuilderParams は既定の長さを返す。
func NewSkeletonBuilderParams() SkeletonBuilderParams {
	return SkeletonBuilderParams{
		HipsHeight:  0.8,
		HipsLength:  0.2,
		SpineLength: 0.1,
		ChestLength: 0.2,
		NeckLength:  0.1,
		HeadLength:  0.2,
		Shoulder:    0.1,
		UpperArm:    0.3,
		LowerArm:    0.3,
		Hand:        0.1,
		LegDistance: 0.1,
		UpperLeg:    0.3,
		LowerLeg:    0.4,
		Foot:        0.1,
		Toe:         0.1,
	}
}

// baseBonePlacement は基本骨格1本分の配置を表す。
type baseBonePlacement struct {
	Bone     humanoid.BoneId
	Parent   humanoid.BoneId
	Position mmath.Vec3
}

// SkeletonBuilder は合成ヒューマノイドスケルトンを組み立てる。
type SkeletonBuilder struct {
	skeleton *skeleton.Skeleton
	rig      *skeleton.RigDescription
}

// NewSkeletonBuilder はスケルトンビルダーを生成する。
func NewSkeletonBuilder(originName string, origin mmath.Transform) *SkeletonBuilder {
	return &SkeletonBuilder{
		skeleton: skeleton.NewSkeleton(originName, origin),
	}
}

// Skeleton は組み立て中のスケルトンを返す。
func (b *SkeletonBuilder) Skeleton() *skeleton.Skeleton {
	return b.skeleton
}

// AddRoot はルートボーンを追加する。
func (b *SkeletonBuilder) AddRoot(bone humanoid.BoneId, position mmath.Vec3, rotation mmath.Quaternion) error {
	_, err := b.skeleton.AddRoot(bone, position, rotation)
	return err
}

// Add は登録済みの親ボーンの下にボーンを追加する。
func (b *SkeletonBuilder) Add(
	bone humanoid.BoneId,
	parent humanoid.BoneId,
	position mmath.Vec3,
	rotation mmath.Quaternion,
) error {
	_, err := b.skeleton.Add(bone, parent, position, rotation)
	return err
}

// UpdateRotation は登録済みボーンのローカル回転を上書きする。
func (b *SkeletonBuilder) UpdateRotation(bone humanoid.BoneId, rotation mmath.Quaternion) error {
	return b.skeleton.SetRotation(bone, rotation)
}

// BuildBaseSkeleton は体幹・腕・脚の基本骨格を組み立てる。左は -X 側。
func (b *SkeletonBuilder) BuildBaseSkeleton(params SkeletonBuilderParams) error {
	if err := b.AddRoot(humanoid.Hips, mmath.NewVec3(0, params.HipsHeight, 0), mmath.NewQuaternion()); err != nil {
		return err
	}
	for _, placement := range baseBonePlacements(params) {
		if err := b.Add(placement.Bone, placement.Parent, placement.Position, mmath.NewQuaternion()); err != nil {
			return err
		}
	}
	logTransferDebug("基本骨格を構築しました: bones=%d", b.skeleton.Len())
	return nil
}

// baseBonePlacements はHips以下の基本骨格配置を親→子の順で返す。
func baseBonePlacements(params SkeletonBuilderParams) []baseBonePlacement {
	return []baseBonePlacement{
		{humanoid.Spine, humanoid.Hips, mmath.NewVec3(0, params.HipsLength, 0)},
		{humanoid.Chest, humanoid.Spine, mmath.NewVec3(0, params.SpineLength, 0)},
		{humanoid.Neck, humanoid.Chest, mmath.NewVec3(0, params.ChestLength, 0)},
		{humanoid.Head, humanoid.Neck, mmath.NewVec3(0, params.NeckLength, 0)},

		{humanoid.LeftShoulder, humanoid.Chest, mmath.NewVec3(0, params.ChestLength, 0)},
		{humanoid.LeftUpperArm, humanoid.LeftShoulder, mmath.NewVec3(-params.Shoulder, 0, 0)},
		{humanoid.LeftLowerArm, humanoid.LeftUpperArm, mmath.NewVec3(-params.UpperArm, 0, 0)},
		{humanoid.LeftHand, humanoid.LeftLowerArm, mmath.NewVec3(-params.LowerArm, 0, 0)},

		{humanoid.RightShoulder, humanoid.Chest, mmath.NewVec3(0, params.ChestLength, 0)},
		{humanoid.RightUpperArm, humanoid.RightShoulder, mmath.NewVec3(params.Shoulder, 0, 0)},
		{humanoid.RightLowerArm, humanoid.RightUpperArm, mmath.NewVec3(params.UpperArm, 0, 0)},
		{humanoid.RightHand, humanoid.RightLowerArm, mmath.NewVec3(params.LowerArm, 0, 0)},

		{humanoid.LeftUpperLeg, humanoid.Hips, mmath.NewVec3(-params.LegDistance, 0, 0)},
		{humanoid.LeftLowerLeg, humanoid.LeftUpperLeg, mmath.NewVec3(0, -params.UpperLeg, 0)},
		{humanoid.LeftFoot, humanoid.LeftLowerLeg, mmath.NewVec3(0, -params.LowerLeg, 0)},
		{humanoid.LeftToes, humanoid.LeftFoot, mmath.NewVec3(0, -params.Foot, params.Foot)},

		{humanoid.RightUpperLeg, humanoid.Hips, mmath.NewVec3(params.LegDistance, 0, 0)},
		{humanoid.RightLowerLeg, humanoid.RightUpperLeg, mmath.NewVec3(0, -params.UpperLeg, 0)},
		{humanoid.RightFoot, humanoid.RightLowerLeg, mmath.NewVec3(0, -params.LowerLeg, 0)},
		{humanoid.RightToes, humanoid.RightFoot, mmath.NewVec3(0, -params.Foot, params.Foot)},
	}
}

// ApplyHandBaseRotations はデバイス空間の手指を載せるため手首の初期回転を設定する。
func (b *SkeletonBuilder) ApplyHandBaseRotations() error {
	if err := b.UpdateRotation(humanoid.LeftHand, mmath.NewQuaternionFromDegrees(0, 180, 180)); err != nil {
		return err
	}
	return b.UpdateRotation(humanoid.RightHand, mmath.NewQuaternionFromDegrees(0, 0, 0))
}

// GraftHandBones はデバイスのバインドポーズから手指ボーンを移植する。
// 関節数が足りない枠とその子孫は飛ばしてレポートへ記録する。
func (b *SkeletonBuilder) GraftHandBones(side humanoid.Side, source moutput.IHandTrackingSource) (GraftReport, error) {
	report := GraftReport{Side: side}
	slots := humanoid.HandBoneSlots(side)
	if !b.skeleton.Has(side.HandBone()) {
		return report, &skeleton.UnknownParentError{Bone: slots[0].Bone, Parent: side.HandBone()}
	}

	for _, slot := range slots {
		if !b.skeleton.Has(slot.Parent) {
			// 親枠を飛ばした場合は子も載せられない。
			report.Skipped = append(report.Skipped, newInsufficientJointData(side, slot, source.JointCount(side)))
			continue
		}
		local, err := resolveBindJointPose(source, side, slot)
		if err != nil {
			var skipped *InsufficientJointDataError
			if errors.As(err, &skipped) {
				logTransferDebug("手指ボーンを飛ばしました: %s", skipped.Error())
				report.Skipped = append(report.Skipped, skipped)
				continue
			}
			return report, err
		}
		if err := b.Add(slot.Bone, slot.Parent, local.Position, local.Rotation); err != nil {
			return report, err
		}
		report.Grafted = append(report.Grafted, slot.Bone)
	}
	return report, nil
}

// BuildRigDescription はリグ記述を生成する。2回目以降は同じスナップショットを返す。
func (b *SkeletonBuilder) BuildRigDescription() *skeleton.RigDescription {
	if b.rig == nil {
		b.rig = skeleton.NewRigDescription(b.skeleton)
	}
	return b.rig
}

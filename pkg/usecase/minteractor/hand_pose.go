// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// resolveBindJointPose は枠に対応する関節のバインドポーズを返す。
// 合成対象の関節は追跡中の親関節ローカル姿勢と合成する。
func resolveBindJointPose(
	source moutput.IHandTrackingSource,
	side humanoid.Side,
	slot humanoid.HandBoneSlot,
) (mmath.Transform, error) {
	jointCount := source.JointCount(side)
	if int(slot.Vendor) >= jointCount {
		return mmath.Transform{}, newInsufficientJointData(side, slot, jointCount)
	}
	local := source.BindLocalTransform(side, slot.Vendor)
	if !humanoid.RequiresParentComposition(slot.Vendor) {
		return local, nil
	}
	parent, ok := resolveParentJoint(source, side, slot.Vendor, jointCount)
	if !ok {
		return mmath.Transform{}, newInsufficientJointData(side, slot, jointCount)
	}
	return source.LocalTransform(side, parent).Composed(local), nil
}

// resolveLiveJointRotation は枠に対応する関節の今フレームのローカル回転を返す。
func resolveLiveJointRotation(
	source moutput.IHandTrackingSource,
	side humanoid.Side,
	slot humanoid.HandBoneSlot,
	jointCount int,
) (mmath.Quaternion, bool) {
	if int(slot.Vendor) >= jointCount {
		return mmath.Quaternion{}, false
	}
	rotation := source.LocalTransform(side, slot.Vendor).Rotation
	if !humanoid.RequiresParentComposition(slot.Vendor) {
		return rotation, true
	}
	parent, ok := resolveParentJoint(source, side, slot.Vendor, jointCount)
	if !ok {
		return mmath.Quaternion{}, false
	}
	return source.LocalTransform(side, parent).Rotation.Muled(rotation), true
}

// resolveParentJoint は親関節を解決する。範囲外なら false。
func resolveParentJoint(
	source moutput.IHandTrackingSource,
	side humanoid.Side,
	joint humanoid.VendorBoneId,
	jointCount int,
) (humanoid.VendorBoneId, bool) {
	parentIndex := source.ParentJointIndex(side, joint)
	if parentIndex < 0 || parentIndex >= jointCount {
		return 0, false
	}
	return humanoid.VendorBoneId(parentIndex), true
}

// newInsufficientJointData は関節データ不足エラーを生成する。
func newInsufficientJointData(side humanoid.Side, slot humanoid.HandBoneSlot, jointCount int) *InsufficientJointDataError {
	return &InsufficientJointDataError{
		Side:       side,
		Bone:       slot.Bone,
		Joint:      slot.Vendor,
		JointCount: jointCount,
	}
}

// UpdateHandBones は今フレームの関節回転を合成スケルトンの手指ボーンへ書き込む。
// 位置はバインド時の値を保つ。移植時に飛ばしたボーンは対象外。
func UpdateHandBones(sk *skeleton.Skeleton, side humanoid.Side, source moutput.IHandTrackingSource) (int, error) {
	jointCount := source.JointCount(side)
	updated := 0
	for _, slot := range humanoid.HandBoneSlots(side) {
		if !sk.Has(slot.Bone) {
			continue
		}
		rotation, ok := resolveLiveJointRotation(source, side, slot, jointCount)
		if !ok {
			continue
		}
		if err := sk.SetRotation(slot.Bone, rotation); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// 指示: miu200521358
package skeleton

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
)

// BoneNode はスケルトン内の1ボーンを表す。親参照は所有しない。
type BoneNode struct {
	bone          humanoid.BoneId
	name          string
	parent        *BoneNode
	localPosition mmath.Vec3
	localRotation mmath.Quaternion
	localScale    mmath.Vec3
}

// Bone は標準ボーンIDを返す。
func (n *BoneNode) Bone() humanoid.BoneId { return n.bone }

// Name はボーン名を返す。
func (n *BoneNode) Name() string { return n.name }

// Parent は親ボーンを返す。ルートは nil。
func (n *BoneNode) Parent() *BoneNode { return n.parent }

// IsRoot はルートか判定する。
func (n *BoneNode) IsRoot() bool { return n.parent == nil }

// LocalPosition はローカル位置を返す。
func (n *BoneNode) LocalPosition() mmath.Vec3 { return n.localPosition }

// LocalRotation はローカル回転を返す。
func (n *BoneNode) LocalRotation() mmath.Quaternion { return n.localRotation }

// LocalScale はローカルスケールを返す。
func (n *BoneNode) LocalScale() mmath.Vec3 { return n.localScale }

// LocalTransform はローカル位置と回転を返す。
func (n *BoneNode) LocalTransform() mmath.Transform {
	return mmath.NewTransformFrom(n.localPosition, n.localRotation)
}

// setLocalRotation はローカル回転を上書きする。
func (n *BoneNode) setLocalRotation(rotation mmath.Quaternion) {
	n.localRotation = rotation
}

// setLocalPosition はローカル位置を上書きする。
func (n *BoneNode) setLocalPosition(position mmath.Vec3) {
	n.localPosition = position
}

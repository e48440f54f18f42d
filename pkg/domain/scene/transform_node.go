// 指示: miu200521358
// Package scene はホスト側シーンの変換ノードを表す。
package scene

import "github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"

// TransformNode は親を持つ変換ノードを表す。
type TransformNode struct {
	name   string
	parent *TransformNode
	local  mmath.Transform
}

// NewTransformNode は変換ノードを生成する。parent が nil ならワールド直下。
func NewTransformNode(name string, parent *TransformNode) *TransformNode {
	return &TransformNode{
		name:   name,
		parent: parent,
		local:  mmath.NewTransform(),
	}
}

// Name はノード名を返す。
func (n *TransformNode) Name() string { return n.name }

// Parent は親ノードを返す。
func (n *TransformNode) Parent() *TransformNode { return n.parent }

// SetLocalPose はローカル位置と回転を設定する。
func (n *TransformNode) SetLocalPose(position mmath.Vec3, rotation mmath.Quaternion) {
	n.local = mmath.NewTransformFrom(position, rotation)
}

// SetLocalEulerAngles はローカル位置とオイラー角(度)を設定する。
func (n *TransformNode) SetLocalEulerAngles(position mmath.Vec3, degrees mmath.Vec3) {
	n.SetLocalPose(position, mmath.NewQuaternionFromEulerVec(degrees))
}

// LocalPose はローカル姿勢を返す。
func (n *TransformNode) LocalPose() mmath.Transform {
	return n.local
}

// WorldPose はワールド姿勢を返す。
func (n *TransformNode) WorldPose() mmath.Transform {
	if n.parent == nil {
		return n.local
	}
	return n.parent.WorldPose().Composed(n.local)
}

// SetWorldPose はワールド姿勢になるようローカル姿勢を逆算して設定する。
func (n *TransformNode) SetWorldPose(position mmath.Vec3, rotation mmath.Quaternion) {
	world := mmath.NewTransformFrom(position, rotation)
	if n.parent == nil {
		n.local = world
		return
	}
	n.local = n.parent.WorldPose().Inverted().Composed(world)
}

// 指示: miu200521358
package avatar

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/scene"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// MemoryAvatar はメモリ上に姿勢と手首ボーンを持つ転送先アバターを表す。
type MemoryAvatar struct {
	name   string
	root   *scene.TransformNode
	pose   *pose.Pose
	bones  map[humanoid.BoneId]*scene.TransformNode
	writes int
}

// NewMemoryAvatar は手首ボーンを持つアバターを生成する。root が nil ならワールド直下に置く。
func NewMemoryAvatar(name string, root *scene.TransformNode) *MemoryAvatar {
	if root == nil {
		root = scene.NewTransformNode(name, nil)
	}
	avatar := &MemoryAvatar{
		name:  name,
		root:  root,
		pose:  pose.NewPose(),
		bones: make(map[humanoid.BoneId]*scene.TransformNode),
	}
	for _, side := range humanoid.Sides {
		bone := side.HandBone()
		avatar.bones[bone] = scene.NewTransformNode(bone.String(), root)
	}
	return avatar
}

// Name はアバター名を返す。
func (a *MemoryAvatar) Name() string { return a.name }

// Root はアバターのルートノードを返す。
func (a *MemoryAvatar) Root() *scene.TransformNode { return a.root }

// Pose は現在の姿勢の複製を返す。
func (a *MemoryAvatar) Pose() *pose.Pose { return a.pose.Clone() }

// Writes は姿勢が書き込まれた回数を返す。
func (a *MemoryAvatar) Writes() int { return a.writes }

// SetInitialPose は姿勢を直接設定する。
func (a *MemoryAvatar) SetInitialPose(p *pose.Pose) {
	a.pose = p.Clone()
}

// RemoveBone は手首ボーンを取り除く。
func (a *MemoryAvatar) RemoveBone(bone humanoid.BoneId) {
	delete(a.bones, bone)
}

// NewPoseHandler はアバター用ポーズハンドラを生成する。
func (a *MemoryAvatar) NewPoseHandler() (moutput.IPoseHandler, error) {
	return &memoryPoseHandler{avatar: a}, nil
}

// ResolveBoneTransform は手首ボーンのノードを返す。無ければ nil。
func (a *MemoryAvatar) ResolveBoneTransform(bone humanoid.BoneId) moutput.ITransformNode {
	node, ok := a.bones[bone]
	if !ok {
		return nil
	}
	return node
}

// Bone は手首ボーンのノードを返す。
func (a *MemoryAvatar) Bone(bone humanoid.BoneId) *scene.TransformNode {
	return a.bones[bone]
}

// memoryPoseHandler は MemoryAvatar の姿勢を読み書きする。
type memoryPoseHandler struct {
	avatar *MemoryAvatar
}

func (h *memoryPoseHandler) GetPose() *pose.Pose {
	return h.avatar.pose.Clone()
}

func (h *memoryPoseHandler) SetPose(p *pose.Pose) {
	h.avatar.pose = p.Clone()
	h.avatar.writes++
}

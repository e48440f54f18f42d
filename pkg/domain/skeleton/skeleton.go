// 指示: miu200521358
// Package skeleton は合成ヒューマノイドスケルトンとリグ記述を扱う。
package skeleton

import (
	"fmt"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
)

// Origin はスケルトンをぶら下げるホスト側オブジェクトを表す。
type Origin struct {
	Name  string
	Local mmath.Transform
	Scale mmath.Vec3
}

// Skeleton はBoneIdをキーとするボーン木を表す。全ボーンを一括で所有する。
type Skeleton struct {
	origin Origin
	nodes  [humanoid.BoneCount]*BoneNode
	order  []humanoid.BoneId
	root   *BoneNode
}

// NewSkeleton は空のスケルトンを生成する。
func NewSkeleton(originName string, originLocal mmath.Transform) *Skeleton {
	return &Skeleton{
		origin: Origin{
			Name:  originName,
			Local: originLocal,
			Scale: mmath.NewVec3(1, 1, 1),
		},
		order: make([]humanoid.BoneId, 0, humanoid.BoneCount),
	}
}

// Origin はホスト側オブジェクト情報を返す。
func (s *Skeleton) Origin() Origin {
	return s.origin
}

// AddRoot はルートボーンを追加する。ルートは1つだけ。
func (s *Skeleton) AddRoot(bone humanoid.BoneId, position mmath.Vec3, rotation mmath.Quaternion) (*BoneNode, error) {
	if err := s.checkInsertable(bone); err != nil {
		return nil, err
	}
	if s.root != nil {
		return nil, &RootAlreadyExistsError{Bone: bone, Root: s.root.bone}
	}
	node := s.insert(bone, nil, position, rotation)
	s.root = node
	return node, nil
}

// Add は登録済みの親ボーンの下にボーンを追加する。
func (s *Skeleton) Add(
	bone humanoid.BoneId,
	parent humanoid.BoneId,
	position mmath.Vec3,
	rotation mmath.Quaternion,
) (*BoneNode, error) {
	if err := s.checkInsertable(bone); err != nil {
		return nil, err
	}
	parentNode := s.Get(parent)
	if parentNode == nil {
		return nil, &UnknownParentError{Bone: bone, Parent: parent}
	}
	return s.insert(bone, parentNode, position, rotation), nil
}

// SetRotation は登録済みボーンのローカル回転を上書きする。
func (s *Skeleton) SetRotation(bone humanoid.BoneId, rotation mmath.Quaternion) error {
	node := s.Get(bone)
	if node == nil {
		return &UnknownBoneError{Bone: bone}
	}
	node.setLocalRotation(rotation)
	return nil
}

// SetPosition は登録済みボーンのローカル位置を上書きする。
func (s *Skeleton) SetPosition(bone humanoid.BoneId, position mmath.Vec3) error {
	node := s.Get(bone)
	if node == nil {
		return &UnknownBoneError{Bone: bone}
	}
	node.setLocalPosition(position)
	return nil
}

// Get はボーンを返す。未登録なら nil。
func (s *Skeleton) Get(bone humanoid.BoneId) *BoneNode {
	if s == nil || !bone.Valid() {
		return nil
	}
	return s.nodes[bone]
}

// Has は登録済みか判定する。
func (s *Skeleton) Has(bone humanoid.BoneId) bool {
	return s.Get(bone) != nil
}

// Root はルートボーンを返す。
func (s *Skeleton) Root() *BoneNode {
	return s.root
}

// Len は登録ボーン数を返す。
func (s *Skeleton) Len() int {
	return len(s.order)
}

// BoneIds は登録順のBoneId一覧を返す。
func (s *Skeleton) BoneIds() []humanoid.BoneId {
	ids := make([]humanoid.BoneId, len(s.order))
	copy(ids, s.order)
	return ids
}

// Bones は登録順のボーン一覧を返す。
func (s *Skeleton) Bones() []*BoneNode {
	bones := make([]*BoneNode, 0, len(s.order))
	for _, bone := range s.order {
		bones = append(bones, s.nodes[bone])
	}
	return bones
}

// Ancestors はルートから指定ボーンまでの連鎖を返す。
func (s *Skeleton) Ancestors(bone humanoid.BoneId) ([]*BoneNode, error) {
	node := s.Get(bone)
	if node == nil {
		return nil, &UnknownBoneError{Bone: bone}
	}
	chain := make([]*BoneNode, 0, 8)
	for current := node; current != nil; current = current.parent {
		chain = append(chain, current)
		if len(chain) > len(s.order) {
			return nil, fmt.Errorf("ボーン階層が循環しています: bone=%s", bone)
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// ModelTransform はホスト側オブジェクト基準の姿勢を返す。
func (s *Skeleton) ModelTransform(bone humanoid.BoneId) (mmath.Transform, error) {
	chain, err := s.Ancestors(bone)
	if err != nil {
		return mmath.Transform{}, err
	}
	transform := mmath.NewTransform()
	for _, node := range chain {
		transform = transform.Composed(node.LocalTransform())
	}
	return transform, nil
}

// WorldTransform はホスト側オブジェクトの配置を含めた姿勢を返す。
func (s *Skeleton) WorldTransform(bone humanoid.BoneId) (mmath.Transform, error) {
	model, err := s.ModelTransform(bone)
	if err != nil {
		return mmath.Transform{}, err
	}
	return s.origin.Local.Composed(model), nil
}

// Validate はルートが1つで全ボーンがルートへ到達することを検証する。
func (s *Skeleton) Validate() error {
	if len(s.order) == 0 {
		return nil
	}
	if s.root == nil {
		return fmt.Errorf("ルートボーンが未登録です")
	}
	roots := 0
	for _, node := range s.Bones() {
		if node.IsRoot() {
			roots++
		}
		chain, err := s.Ancestors(node.bone)
		if err != nil {
			return err
		}
		if chain[0] != s.root {
			return fmt.Errorf("ルートへ到達しないボーンがあります: bone=%s", node.bone)
		}
	}
	if roots != 1 {
		return fmt.Errorf("ルートボーン数が不正です: %d", roots)
	}
	return nil
}

// checkInsertable は追加可能なBoneIdか検証する。
func (s *Skeleton) checkInsertable(bone humanoid.BoneId) error {
	if !bone.Valid() {
		return fmt.Errorf("ボーンIDが範囲外です: %d", int(bone))
	}
	if s.nodes[bone] != nil {
		return &DuplicateBoneError{Bone: bone}
	}
	return nil
}

// insert はノードを生成して登録する。
func (s *Skeleton) insert(
	bone humanoid.BoneId,
	parent *BoneNode,
	position mmath.Vec3,
	rotation mmath.Quaternion,
) *BoneNode {
	node := &BoneNode{
		bone:          bone,
		name:          bone.String(),
		parent:        parent,
		localPosition: position,
		localRotation: rotation,
		localScale:    mmath.NewVec3(1, 1, 1),
	}
	s.nodes[bone] = node
	s.order = append(s.order, bone)
	return node
}

// 指示: miu200521358
package skeleton

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	deepcopy "github.com/tiendc/go-deepcopy"
)

// SkeletonBone はリグ記述内の1ボーン分のローカル姿勢を表す。
type SkeletonBone struct {
	Name     string
	Position mmath.Vec3
	Rotation mmath.Quaternion
	Scale    mmath.Vec3
}

// HumanBone は標準ボーン名とスケルトン内ボーン名の対応を表す。
type HumanBone struct {
	Bone      humanoid.BoneId
	HumanName string
	BoneName  string
}

// RigTuning はリターゲット品質用の調整値を表す。
type RigTuning struct {
	ArmStretch        float64
	LegStretch        float64
	UpperArmTwist     float64
	LowerArmTwist     float64
	UpperLegTwist     float64
	LowerLegTwist     float64
	FeetSpacing       float64
	HasTranslationDoF bool
}

// DefaultRigTuning は合成リグ用の固定調整値。
var DefaultRigTuning = RigTuning{
	ArmStretch:        0.05,
	LegStretch:        0.05,
	UpperArmTwist:     0.5,
	LowerArmTwist:     0.5,
	UpperLegTwist:     0.5,
	LowerLegTwist:     0.5,
	FeetSpacing:       0.0,
	HasTranslationDoF: false,
}

// RigDescription はスケルトン完成時点の読み取り専用スナップショットを表す。
type RigDescription struct {
	id            uuid.UUID
	skeletonBones []SkeletonBone
	humanBones    []HumanBone
	displayNames  map[humanoid.BoneId]string
	tuning        RigTuning
}

// NewRigDescription はスケルトンからリグ記述を生成する。先頭はホスト側オブジェクト。
func NewRigDescription(s *Skeleton) *RigDescription {
	origin := s.Origin()
	skeletonBones := make([]SkeletonBone, 0, s.Len()+1)
	skeletonBones = append(skeletonBones, SkeletonBone{
		Name:     origin.Name,
		Position: origin.Local.Position,
		Rotation: origin.Local.Rotation,
		Scale:    origin.Scale,
	})

	humanBones := make([]HumanBone, 0, s.Len())
	displayNames := make(map[humanoid.BoneId]string, s.Len())
	for _, node := range s.Bones() {
		skeletonBones = append(skeletonBones, SkeletonBone{
			Name:     node.Name(),
			Position: node.LocalPosition(),
			Rotation: node.LocalRotation(),
			Scale:    node.LocalScale(),
		})
		humanBones = append(humanBones, HumanBone{
			Bone:      node.Bone(),
			HumanName: node.Bone().DisplayName(),
			BoneName:  node.Name(),
		})
		displayNames[node.Bone()] = node.Bone().DisplayName()
	}

	return &RigDescription{
		id:            uuid.New(),
		skeletonBones: skeletonBones,
		humanBones:    humanBones,
		displayNames:  displayNames,
		tuning:        DefaultRigTuning,
	}
}

// ID はリグ記述の識別子を返す。
func (r *RigDescription) ID() uuid.UUID {
	return r.id
}

// SkeletonBones はボーン一覧の複製を返す。
func (r *RigDescription) SkeletonBones() []SkeletonBone {
	return mustCopy(r.skeletonBones)
}

// HumanBones は標準ボーン対応一覧の複製を返す。
func (r *RigDescription) HumanBones() []HumanBone {
	return mustCopy(r.humanBones)
}

// mustCopy は src の深いコピーを返す。値型だけの構造体で失敗するのは不変条件違反なので panic する。
func mustCopy[T any](src T) T {
	var dst T
	if err := deepcopy.Copy(&dst, src); err != nil {
		panic(fmt.Sprintf("リグ記述の複製に失敗しました: %v", err))
	}
	return dst
}

// SkeletonBone は名前でボーンを引く。
func (r *RigDescription) SkeletonBone(name string) (SkeletonBone, bool) {
	for _, bone := range r.skeletonBones {
		if bone.Name == name {
			return bone, true
		}
	}
	return SkeletonBone{}, false
}

// DisplayName は標準ボーンの表示名を返す。リグに含まれなければ false。
func (r *RigDescription) DisplayName(bone humanoid.BoneId) (string, bool) {
	name, ok := r.displayNames[bone]
	return name, ok
}

// HasBone はリグに含まれる標準ボーンか判定する。
func (r *RigDescription) HasBone(bone humanoid.BoneId) bool {
	_, ok := r.displayNames[bone]
	return ok
}

// Tuning は調整値を返す。
func (r *RigDescription) Tuning() RigTuning {
	return r.tuning
}

// RigDocument はリグ記述の出力用表現を表す。
type RigDocument struct {
	ID            string             `json:"id" yaml:"id"`
	SkeletonBones []RigDocumentBone  `json:"skeleton" yaml:"skeleton"`
	HumanBones    []RigDocumentHuman `json:"human" yaml:"human"`
	Tuning        RigDocumentTuning  `json:"tuning" yaml:"tuning"`
}

// RigDocumentBone はボーン出力1件を表す。
type RigDocumentBone struct {
	Name     string    `json:"name" yaml:"name"`
	Position []float64 `json:"position" yaml:"position,flow"`
	Rotation []float64 `json:"rotation" yaml:"rotation,flow"`
	Scale    []float64 `json:"scale" yaml:"scale,flow"`
}

// RigDocumentHuman は標準ボーン対応出力1件を表す。
type RigDocumentHuman struct {
	HumanName string `json:"human_name" yaml:"human_name"`
	BoneName  string `json:"bone_name" yaml:"bone_name"`
}

// RigDocumentTuning は調整値出力を表す。
type RigDocumentTuning struct {
	ArmStretch        float64 `json:"arm_stretch" yaml:"arm_stretch"`
	LegStretch        float64 `json:"leg_stretch" yaml:"leg_stretch"`
	UpperArmTwist     float64 `json:"upper_arm_twist" yaml:"upper_arm_twist"`
	LowerArmTwist     float64 `json:"lower_arm_twist" yaml:"lower_arm_twist"`
	UpperLegTwist     float64 `json:"upper_leg_twist" yaml:"upper_leg_twist"`
	LowerLegTwist     float64 `json:"lower_leg_twist" yaml:"lower_leg_twist"`
	FeetSpacing       float64 `json:"feet_spacing" yaml:"feet_spacing"`
	HasTranslationDoF bool    `json:"has_translation_dof" yaml:"has_translation_dof"`
}

// Document は出力用表現を生成する。
func (r *RigDescription) Document() RigDocument {
	doc := RigDocument{
		ID:            r.id.String(),
		SkeletonBones: make([]RigDocumentBone, 0, len(r.skeletonBones)),
		HumanBones:    make([]RigDocumentHuman, 0, len(r.humanBones)),
		Tuning: RigDocumentTuning{
			ArmStretch:        r.tuning.ArmStretch,
			LegStretch:        r.tuning.LegStretch,
			UpperArmTwist:     r.tuning.UpperArmTwist,
			LowerArmTwist:     r.tuning.LowerArmTwist,
			UpperLegTwist:     r.tuning.UpperLegTwist,
			LowerLegTwist:     r.tuning.LowerLegTwist,
			FeetSpacing:       r.tuning.FeetSpacing,
			HasTranslationDoF: r.tuning.HasTranslationDoF,
		},
	}
	for _, bone := range r.skeletonBones {
		doc.SkeletonBones = append(doc.SkeletonBones, RigDocumentBone{
			Name:     bone.Name,
			Position: bone.Position.Slice(),
			Rotation: bone.Rotation.Slice(),
			Scale:    bone.Scale.Slice(),
		})
	}
	for _, human := range r.humanBones {
		doc.HumanBones = append(doc.HumanBones, RigDocumentHuman{
			HumanName: human.HumanName,
			BoneName:  human.BoneName,
		})
	}
	return doc
}

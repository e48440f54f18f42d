// 指示: miu200521358
package avatar

import (
	"errors"
	"fmt"
	"math"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/logging"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// RigPoseHandler は合成リグのボーン回転とマッスル空間姿勢を相互変換する。
// 手指以外のチャンネルは常に0として扱う。
type RigPoseHandler struct {
	skeleton *skeleton.Skeleton
	rest     map[humanoid.BoneId]mmath.Quaternion
	segments []handSegment
}

// handSegment は左右付きの指ボーン割り当てを表す。
type handSegment struct {
	side humanoid.Side
	fingerSegment
}

// RigPoseHandlerFactory は RigPoseHandler を生成する。
type RigPoseHandlerFactory struct{}

// NewRigPoseHandlerFactory はファクトリを生成する。
func NewRigPoseHandlerFactory() *RigPoseHandlerFactory {
	return &RigPoseHandlerFactory{}
}

// NewPoseHandler はリグ記述の姿勢を基準としてポーズハンドラを生成する。
func (f *RigPoseHandlerFactory) NewPoseHandler(
	rig *skeleton.RigDescription,
	sk *skeleton.Skeleton,
) (moutput.IPoseHandler, error) {
	return NewRigPoseHandler(rig, sk)
}

// NewRigPoseHandler はポーズハンドラを生成する。
func NewRigPoseHandler(rig *skeleton.RigDescription, sk *skeleton.Skeleton) (*RigPoseHandler, error) {
	if rig == nil || sk == nil {
		return nil, fmt.Errorf("リグ記述またはスケルトンが未設定です")
	}
	if !sk.Has(humanoid.Hips) {
		return nil, &skeleton.UnknownBoneError{Bone: humanoid.Hips}
	}

	handler := &RigPoseHandler{
		skeleton: sk,
		rest:     make(map[humanoid.BoneId]mmath.Quaternion),
	}
	for _, side := range humanoid.Sides {
		for _, segment := range fingerSegments(side) {
			node := sk.Get(segment.Bone)
			if node == nil {
				continue
			}
			restBone, ok := rig.SkeletonBone(node.Name())
			if !ok {
				return nil, fmt.Errorf("リグ記述にボーンがありません: %s", node.Name())
			}
			handler.rest[segment.Bone] = restBone.Rotation
			handler.segments = append(handler.segments, handSegment{side: side, fingerSegment: segment})
		}
	}
	return handler, nil
}

// GetPose は現在のボーン回転から姿勢を生成する。
func (h *RigPoseHandler) GetPose() *pose.Pose {
	p := pose.NewPose()
	hips := h.skeleton.Get(humanoid.Hips)
	p.BodyPosition = hips.LocalPosition()
	p.BodyRotation = hips.LocalRotation()

	for _, segment := range h.segments {
		node := h.skeleton.Get(segment.Bone)
		if node == nil {
			continue
		}
		delta := h.rest[segment.Bone].Inverted().Muled(node.LocalRotation())
		spread, stretch := decomposeSpreadStretch(delta)
		limit := fingerMuscleLimits[segment.Finger]

		p.Muscles[humanoid.FingerMuscleIndex(segment.side, segment.Finger, segment.Stretch)] =
			clampMuscle(mmath.RadToDeg(stretch) / limit.Stretch)
		if segment.HasSpread {
			p.Muscles[humanoid.FingerMuscleIndex(segment.side, segment.Finger, humanoid.Spread)] =
				clampMuscle(mmath.RadToDeg(spread) / limit.Spread)
		}
	}
	return p
}

// SetPose はマッスル値をボーン回転へ書き戻す。失敗は警告ログに残す。
func (h *RigPoseHandler) SetPose(p *pose.Pose) {
	if err := h.ApplyPose(p); err != nil {
		logging.DefaultLogger().Warn("合成リグへの姿勢反映に失敗しました: %s", err.Error())
	}
}

// ApplyPose はマッスル値をボーン回転へ書き戻し、失敗したボーンをまとめて返す。
func (h *RigPoseHandler) ApplyPose(p *pose.Pose) error {
	if p == nil {
		return fmt.Errorf("姿勢が未設定です")
	}
	if len(p.Muscles) < humanoid.MuscleCount {
		return fmt.Errorf("マッスル数が不足しています: got=%d want=%d", len(p.Muscles), humanoid.MuscleCount)
	}
	errs := []error{
		h.skeleton.SetPosition(humanoid.Hips, p.BodyPosition),
		h.skeleton.SetRotation(humanoid.Hips, p.BodyRotation),
	}

	for _, segment := range h.segments {
		limit := fingerMuscleLimits[segment.Finger]
		stretch := clampMuscle(p.Muscles[humanoid.FingerMuscleIndex(segment.side, segment.Finger, segment.Stretch)])
		spread := 0.0
		if segment.HasSpread {
			spread = clampMuscle(p.Muscles[humanoid.FingerMuscleIndex(segment.side, segment.Finger, humanoid.Spread)])
		}
		delta := composeSpreadStretch(
			mmath.DegToRad(spread*limit.Spread),
			mmath.DegToRad(stretch*limit.Stretch),
		)
		errs = append(errs, h.skeleton.SetRotation(segment.Bone, h.rest[segment.Bone].Muled(delta)))
	}
	return errors.Join(errs...)
}

// composeSpreadStretch は Ry(spread)・Rz(stretch) を返す。
func composeSpreadStretch(spread, stretch float64) mmath.Quaternion {
	spreadRotation := mmath.NewQuaternionFromAxisAngle(mmath.NewVec3(0, 1, 0), spread)
	stretchRotation := mmath.NewQuaternionFromAxisAngle(mmath.NewVec3(0, 0, 1), stretch)
	return spreadRotation.Muled(stretchRotation)
}

// decomposeSpreadStretch は回転を Ry(spread)・Rz(stretch) とみなして角度(ラジアン)を取り出す。
// ねじれ成分は捨てる。
func decomposeSpreadStretch(rotation mmath.Quaternion) (spread, stretch float64) {
	m := rotation.Normalized().ToMat4()
	return math.Atan2(m.At(0, 2), m.At(2, 2)), math.Atan2(m.At(1, 0), m.At(1, 1))
}

// clampMuscle はマッスル値を [-1, 1] に収める。
func clampMuscle(value float64) float64 {
	return math.Max(-1, math.Min(1, value))
}

// 指示: miu200521358
// Package pose はマッスル空間の姿勢を扱う。
package pose

import (
	"fmt"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	deepcopy "github.com/tiendc/go-deepcopy"
)

// Pose はマッスル値と体の位置・回転を表す。毎フレーム生成し直す一時値。
type Pose struct {
	Muscles      []float64
	BodyPosition mmath.Vec3
	BodyRotation mmath.Quaternion
}

// NewPose は全チャンネル0の姿勢を生成する。
func NewPose() *Pose {
	return &Pose{
		Muscles:      make([]float64, humanoid.MuscleCount),
		BodyPosition: mmath.ZeroVec3(),
		BodyRotation: mmath.NewQuaternion(),
	}
}

// Clone は姿勢の複製を返す。
func (p *Pose) Clone() *Pose {
	if p == nil {
		return nil
	}
	cloned := &Pose{}
	if err := deepcopy.Copy(cloned, p); err != nil {
		// 数値だけの構造体なので失敗は不変条件違反。
		panic(fmt.Sprintf("姿勢の複製に失敗しました: %v", err))
	}
	return cloned
}

// Fill は全チャンネルを同じ値で埋める。
func (p *Pose) Fill(value float64) {
	for i := range p.Muscles {
		p.Muscles[i] = value
	}
}

// ChannelRange はマッスルチャンネルの範囲 [Lower, Upper) を表す。
type ChannelRange struct {
	Lower int
	Upper int
}

// DefaultHandChannelRange は手指マッスルの既定範囲。
var DefaultHandChannelRange = ChannelRange{Lower: humanoid.HandMuscleLower, Upper: humanoid.HandMuscleUpper}

// Len は範囲内のチャンネル数を返す。
func (r ChannelRange) Len() int {
	if r.Upper <= r.Lower {
		return 0
	}
	return r.Upper - r.Lower
}

// Contains は範囲内か判定する。
func (r ChannelRange) Contains(index int) bool {
	return index >= r.Lower && index < r.Upper
}

// ChannelRangeError はチャンネル数に収まらない範囲を表す。
type ChannelRangeError struct {
	Range       ChannelRange
	MuscleCount int
}

// Error はエラーメッセージを返す。
func (e *ChannelRangeError) Error() string {
	return fmt.Sprintf("チャンネル範囲が不正です: %s muscles=%d", e.Range, e.MuscleCount)
}

// Validate はチャンネル数に対して範囲が妥当か検証する。
func (r ChannelRange) Validate(muscleCount int) error {
	if r.Lower < 0 || r.Upper > muscleCount || r.Lower > r.Upper {
		return &ChannelRangeError{Range: r, MuscleCount: muscleCount}
	}
	return nil
}

// String は範囲を文字列で返す。
func (r ChannelRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Lower, r.Upper)
}

// CopyChannels は範囲内のチャンネルだけを src から dst へ上書きする。
func CopyChannels(dst *Pose, src *Pose, rng ChannelRange) error {
	if dst == nil || src == nil {
		return fmt.Errorf("姿勢が未設定です")
	}
	if err := rng.Validate(len(src.Muscles)); err != nil {
		return err
	}
	if err := rng.Validate(len(dst.Muscles)); err != nil {
		return err
	}
	copy(dst.Muscles[rng.Lower:rng.Upper], src.Muscles[rng.Lower:rng.Upper])
	return nil
}

// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// Retarget は範囲内のマッスル値を src から dst へ写し、dst の体位置に補正を加える。
// 範囲外のチャンネルと体回転は変更しない。
func Retarget(src, dst moutput.IPoseHandler, rng pose.ChannelRange, bodyOffset mmath.Vec3) error {
	if src == nil {
		return &PoseHandlerMissingError{Role: "source"}
	}
	if dst == nil {
		return &PoseHandlerMissingError{Role: "target"}
	}

	sourcePose := src.GetPose()
	targetPose := dst.GetPose()
	if sourcePose == nil {
		return &PoseHandlerMissingError{Role: "source pose"}
	}
	if targetPose == nil {
		return &PoseHandlerMissingError{Role: "target pose"}
	}
	if err := pose.CopyChannels(targetPose, sourcePose, rng); err != nil {
		var rangeErr *pose.ChannelRangeError
		if errors.As(err, &rangeErr) {
			return &InvalidChannelRangeError{Range: rangeErr.Range, MuscleCount: rangeErr.MuscleCount}
		}
		return err
	}
	targetPose.BodyPosition = targetPose.BodyPosition.Added(bodyOffset)
	dst.SetPose(targetPose)
	return nil
}

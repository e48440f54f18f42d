// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"
	"time"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
)

const (
	// ErrorIDInsufficientJointData は関節データ不足のID。
	ErrorIDInsufficientJointData = "22001"
	// ErrorIDDeviceNotReady はデバイス初期化待ちタイムアウトのID。
	ErrorIDDeviceNotReady = "22002"
	// ErrorIDInvalidChannelRange はチャンネル範囲不正のID。
	ErrorIDInvalidChannelRange = "23001"
	// ErrorIDPoseHandlerMissing はポーズハンドラ未設定のID。
	ErrorIDPoseHandlerMissing = "23002"
)

// InsufficientJointDataError はデバイスの関節数が枠に足りないことを表す。致命的ではない。
type InsufficientJointDataError struct {
	Side       humanoid.Side
	Bone       humanoid.BoneId
	Joint      humanoid.VendorBoneId
	JointCount int
}

// Error はエラーメッセージを返す。
func (e *InsufficientJointDataError) Error() string {
	return fmt.Sprintf(
		"関節データが不足しています: side=%s bone=%s joint=%s jointCount=%d",
		e.Side, e.Bone, e.Joint, e.JointCount,
	)
}

// ErrorID はエラーIDを返す。
func (e *InsufficientJointDataError) ErrorID() string { return ErrorIDInsufficientJointData }

// DeviceNotReadyError はデバイスが初期化完了を報告しなかったことを表す。
type DeviceNotReadyError struct {
	Timeout time.Duration
	Polls   int
	Closed  bool
}

// Error はエラーメッセージを返す。
func (e *DeviceNotReadyError) Error() string {
	if e.Closed {
		return fmt.Sprintf("デバイス初期化前にフレーム供給が終了しました: polls=%d", e.Polls)
	}
	return fmt.Sprintf("デバイスの初期化待ちがタイムアウトしました: timeout=%s polls=%d", e.Timeout, e.Polls)
}

// ErrorID はエラーIDを返す。
func (e *DeviceNotReadyError) ErrorID() string { return ErrorIDDeviceNotReady }

// InvalidChannelRangeError はマッスルチャンネル範囲の不正を表す。
type InvalidChannelRangeError struct {
	Range       pose.ChannelRange
	MuscleCount int
}

// Error はエラーメッセージを返す。
func (e *InvalidChannelRangeError) Error() string {
	return fmt.Sprintf("マッスルチャンネル範囲が不正です: range=%s muscles=%d", e.Range, e.MuscleCount)
}

// ErrorID はエラーIDを返す。
func (e *InvalidChannelRangeError) ErrorID() string { return ErrorIDInvalidChannelRange }

// PoseHandlerMissingError はポーズハンドラ未設定を表す。
type PoseHandlerMissingError struct {
	Role string
}

// Error はエラーメッセージを返す。
func (e *PoseHandlerMissingError) Error() string {
	return fmt.Sprintf("ポーズハンドラが未設定です: %s", e.Role)
}

// ErrorID はエラーIDを返す。
func (e *PoseHandlerMissingError) ErrorID() string { return ErrorIDPoseHandlerMissing }

// IsDeviceNotReadyError はデバイス初期化待ち失敗か判定する。
func IsDeviceNotReadyError(err error) bool {
	var target *DeviceNotReadyError
	return errors.As(err, &target)
}

// IsInsufficientJointDataError は関節データ不足か判定する。
func IsInsufficientJointDataError(err error) bool {
	var target *InsufficientJointDataError
	return errors.As(err, &target)
}

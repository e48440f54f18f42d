// 指示: miu200521358
package skeleton

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
)

const (
	// ErrorIDUnknownParent は親ボーン未登録エラーのID。
	ErrorIDUnknownParent = "21001"
	// ErrorIDUnknownBone はボーン未登録エラーのID。
	ErrorIDUnknownBone = "21002"
	// ErrorIDDuplicateBone はボーン重複登録エラーのID。
	ErrorIDDuplicateBone = "21003"
	// ErrorIDRootAlreadyExists はルート重複エラーのID。
	ErrorIDRootAlreadyExists = "21004"
)

// UnknownParentError は未登録の親ボーンを指定した追加を表す。
type UnknownParentError struct {
	Bone   humanoid.BoneId
	Parent humanoid.BoneId
}

// Error はエラーメッセージを返す。
func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("親ボーンが未登録です: bone=%s parent=%s", e.Bone, e.Parent)
}

// ErrorID はエラーIDを返す。
func (e *UnknownParentError) ErrorID() string { return ErrorIDUnknownParent }

// UnknownBoneError は未登録ボーンへの操作を表す。
type UnknownBoneError struct {
	Bone humanoid.BoneId
}

// Error はエラーメッセージを返す。
func (e *UnknownBoneError) Error() string {
	return fmt.Sprintf("ボーンが未登録です: bone=%s", e.Bone)
}

// ErrorID はエラーIDを返す。
func (e *UnknownBoneError) ErrorID() string { return ErrorIDUnknownBone }

// DuplicateBoneError は登録済みボーンの再追加を表す。
type DuplicateBoneError struct {
	Bone humanoid.BoneId
}

// Error はエラーメッセージを返す。
func (e *DuplicateBoneError) Error() string {
	return fmt.Sprintf("ボーンは登録済みです: bone=%s", e.Bone)
}

// ErrorID はエラーIDを返す。
func (e *DuplicateBoneError) ErrorID() string { return ErrorIDDuplicateBone }

// RootAlreadyExistsError は2つ目のルート追加を表す。
type RootAlreadyExistsError struct {
	Bone humanoid.BoneId
	Root humanoid.BoneId
}

// Error はエラーメッセージを返す。
func (e *RootAlreadyExistsError) Error() string {
	return fmt.Sprintf("ルートボーンは登録済みです: bone=%s root=%s", e.Bone, e.Root)
}

// ErrorID はエラーIDを返す。
func (e *RootAlreadyExistsError) ErrorID() string { return ErrorIDRootAlreadyExists }

// IsUnknownParentError は親ボーン未登録エラーか判定する。
func IsUnknownParentError(err error) bool {
	var target *UnknownParentError
	return errors.As(err, &target)
}

// IsUnknownBoneError はボーン未登録エラーか判定する。
func IsUnknownBoneError(err error) bool {
	var target *UnknownBoneError
	return errors.As(err, &target)
}

// IsDuplicateBoneError はボーン重複エラーか判定する。
func IsDuplicateBoneError(err error) bool {
	var target *DuplicateBoneError
	return errors.As(err, &target)
}

// 指示: miu200521358
// Package merr はエラーIDを持つエラーを扱う。
package merr

import (
	"errors"
	"fmt"
)

// IIdentifiedError はエラーIDを持つエラーの契約を表す。
type IIdentifiedError interface {
	error
	ErrorID() string
}

// CommonError はエラーIDと原因を保持する汎用エラーを表す。
type CommonError struct {
	id      string
	message string
	cause   error
}

// NewCommonError はエラーIDと書式からエラーを生成する。
func NewCommonError(id string, cause error, format string, params ...any) *CommonError {
	return &CommonError{
		id:      id,
		message: fmt.Sprintf(format, params...),
		cause:   cause,
	}
}

// Error はエラーメッセージを返す。
func (e *CommonError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// Unwrap は原因エラーを返す。
func (e *CommonError) Unwrap() error {
	return e.cause
}

// ErrorID はエラーIDを返す。
func (e *CommonError) ErrorID() string {
	return e.id
}

// ExtractErrorID はエラー連鎖から最初に見つかったエラーIDを返す。見つからなければ空文字。
func ExtractErrorID(err error) string {
	var identified IIdentifiedError
	if errors.As(err, &identified) {
		return identified.ErrorID()
	}
	return ""
}

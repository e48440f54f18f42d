// 指示: miu200521358
package io_capture

import "github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/merr"

const (
	// ErrorIDCaptureFormat はキャプチャ形式不正のID。
	ErrorIDCaptureFormat = "24001"
	// ErrorIDCaptureExtInvalid は拡張子不正のID。
	ErrorIDCaptureExtInvalid = "24002"
	// ErrorIDCaptureFileNotFound はファイル未検出のID。
	ErrorIDCaptureFileNotFound = "24003"
	// ErrorIDCaptureParseFailed は解析失敗のID。
	ErrorIDCaptureParseFailed = "24004"
)

// NewCaptureFormatError はキャプチャ内容の不正エラーを生成する。
func NewCaptureFormatError(format string, params ...any) error {
	return merr.NewCommonError(ErrorIDCaptureFormat, nil, format, params...)
}

// NewCaptureExtInvalid は拡張子不正エラーを生成する。
func NewCaptureExtInvalid(path string) error {
	return merr.NewCommonError(ErrorIDCaptureExtInvalid, nil, "キャプチャファイルの拡張子が不正です: %s", path)
}

// NewCaptureFileNotFound はファイル未検出エラーを生成する。
func NewCaptureFileNotFound(path string, cause error) error {
	return merr.NewCommonError(ErrorIDCaptureFileNotFound, cause, "キャプチャファイルが見つかりません: %s", path)
}

// NewCaptureParseFailed は解析失敗エラーを生成する。
func NewCaptureParseFailed(message string, cause error) error {
	return merr.NewCommonError(ErrorIDCaptureParseFailed, cause, "%s", message)
}

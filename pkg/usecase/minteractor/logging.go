// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/logging"

// logTransferInfo はハンドポーズ転送のINFOログを出力する。
func logTransferInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logTransferDebug はハンドポーズ転送のデバッグログを出力する。
func logTransferDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logTransferWarn はハンドポーズ転送の警告ログを出力する。
func logTransferWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

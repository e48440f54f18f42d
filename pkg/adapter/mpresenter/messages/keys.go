// 指示: miu200521358
// Package messages はCLI表示に使うメッセージキーと翻訳を提供する。
package messages

// メッセージキー一覧。
const (
	CommandRootShort   = "ハンドトラッキングの手指姿勢をアバターへ転送する"
	CommandReplayShort = "キャプチャを再生して手指姿勢を転送する"
	CommandRigShort    = "合成リグの記述を出力する"

	FlagCapture   = "キャプチャファイル(YAML)"
	FlagConfig    = "設定ファイル(YAML)"
	FlagFormat    = "出力形式"
	FlagFrames    = "再生フレーム数(0は全フレーム)"
	FlagLang      = "表示言語"
	FlagVisualize = "ボーン確認用マーカーを配置する"

	MessageCaptureRequired = "キャプチャファイルを指定してください"
	MessageFormatInvalid   = "出力形式が不正です: %s"
	MessageDeviceNotReady  = "デバイスの初期化が完了しませんでした"
	MessageConfigInvalid   = "設定が不正です: %s"

	LogReplayStart   = "再生開始: capture=%s frames=%d"
	LogReplayDone    = "再生完了: frames=%d retargeted=%d"
	LogSkippedBones  = "関節データ不足のため飛ばしたボーン: side=%s count=%d"
	LogTracingActive = "トレース送信先: %s"
)

// allKeys は翻訳対象のキー一覧。
var allKeys = []string{
	CommandRootShort,
	CommandReplayShort,
	CommandRigShort,
	FlagCapture,
	FlagConfig,
	FlagFormat,
	FlagFrames,
	FlagLang,
	FlagVisualize,
	MessageCaptureRequired,
	MessageFormatInvalid,
	MessageDeviceNotReady,
	MessageConfigInvalid,
	LogReplayStart,
	LogReplayDone,
	LogSkippedBones,
	LogTracingActive,
}

// 指示: miu200521358
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// englishMessages は英語訳を保持する。
var englishMessages = map[string]string{
	CommandRootShort:       "Retarget tracked hand poses onto an avatar",
	CommandReplayShort:     "Replay a capture and retarget the hand pose",
	CommandRigShort:        "Print the synthetic rig description",
	FlagCapture:            "capture file (YAML)",
	FlagConfig:             "config file (YAML)",
	FlagFormat:             "output format",
	FlagFrames:             "number of frames to replay (0 for all)",
	FlagLang:               "display language",
	FlagVisualize:          "attach bone markers",
	MessageCaptureRequired: "a capture file is required",
	MessageFormatInvalid:   "invalid output format: %s",
	MessageDeviceNotReady:  "the tracking device never became ready",
	MessageConfigInvalid:   "invalid config: %s",
	LogReplayStart:         "replay started: capture=%s frames=%d",
	LogReplayDone:          "replay finished: frames=%d retargeted=%d",
	LogSkippedBones:        "bones skipped for missing joint data: side=%s count=%d",
	LogTracingActive:       "trace endpoint: %s",
}

// messageCatalog は日本語と英語のメッセージカタログ。
var messageCatalog = mustBuildCatalog()

// mustBuildCatalog はカタログを構築する。登録に失敗したら起動できないので panic する。
func mustBuildCatalog() catalog.Catalog {
	built, err := buildCatalog()
	if err != nil {
		panic(err)
	}
	return built
}

// buildCatalog はメッセージカタログを構築する。
func buildCatalog() (catalog.Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.Japanese))
	for _, key := range allKeys {
		if err := builder.SetString(language.Japanese, key, key); err != nil {
			return nil, fmt.Errorf("メッセージ登録に失敗しました: lang=ja key=%s: %w", key, err)
		}
		if english, ok := englishMessages[key]; ok {
			if err := builder.SetString(language.English, key, english); err != nil {
				return nil, fmt.Errorf("メッセージ登録に失敗しました: lang=en key=%s: %w", key, err)
			}
		}
	}
	return builder, nil
}

// NewPrinter は言語コードに対応するプリンタを返す。解釈できなければ日本語。
func NewPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Japanese
	}
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}

// Translate はキーを指定言語へ翻訳して書式化する。
func Translate(lang string, key string, params ...any) string {
	return NewPrinter(lang).Sprintf(key, params...)
}

// 指示: miu200521358
package io_capture

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/logging"
)

// CaptureRepository はキャプチャファイルの読み書きを表す。
type CaptureRepository struct{}

// NewCaptureRepository はCaptureRepositoryを生成する。
func NewCaptureRepository() *CaptureRepository {
	return &CaptureRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *CaptureRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml")
}

// InferName はパスから表示名を推定する。
func (r *CaptureRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はキャプチャファイルを読み込む。
func (r *CaptureRepository) Load(path string) (*Capture, error) {
	if !r.CanLoad(path) {
		return nil, NewCaptureExtInvalid(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewCaptureFileNotFound(path, err)
		}
		return nil, NewCaptureParseFailed("キャプチャファイルの読み取りに失敗しました", err)
	}
	capture, err := r.Parse(b)
	if err != nil {
		return nil, err
	}
	if capture.Name == "" {
		capture.Name = r.InferName(path)
	}
	logCaptureInfo("キャプチャ読込完了: file=%s frames=%d", filepath.Base(path), capture.FrameCount())
	return capture, nil
}

// Parse はYAMLからキャプチャを生成する。
func (r *CaptureRepository) Parse(data []byte) (*Capture, error) {
	doc := CaptureDocument{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewCaptureParseFailed("キャプチャYAMLの解析に失敗しました", err)
	}
	return newCapture(&doc)
}

// Save はキャプチャをYAMLで保存する。
func (r *CaptureRepository) Save(path string, capture *Capture) error {
	if !r.CanLoad(path) {
		return NewCaptureExtInvalid(path)
	}
	b, err := yaml.Marshal(capture.Document())
	if err != nil {
		return NewCaptureParseFailed("キャプチャYAMLの生成に失敗しました", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// logCaptureInfo はキャプチャ入出力のINFOログを出力する。
func logCaptureInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

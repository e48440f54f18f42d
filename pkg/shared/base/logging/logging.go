// 指示: miu200521358
// Package logging はアプリ全体で共有するロガーを提供する。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel はログレベルを表す。
type LogLevel int

const (
	LOG_LEVEL_DEBUG LogLevel = iota
	LOG_LEVEL_INFO
	LOG_LEVEL_WARN
	LOG_LEVEL_ERROR
)

// ILogger はロガーの契約を表す。
type ILogger interface {
	Debug(format string, params ...any)
	Info(format string, params ...any)
	Warn(format string, params ...any)
	Error(format string, params ...any)
	SetLevel(level LogLevel)
	Level() LogLevel
	IsEnabled(level LogLevel) bool
}

// Logger はslogを使うロガー実装を表す。
type Logger struct {
	level  *slog.LevelVar
	logger *slog.Logger
}

// NewLogger はロガーを生成する。w が nil の場合は標準エラー出力へ書き込む。
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{level: level, logger: slog.New(handler)}
}

// Debug はDEBUGログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.log(LOG_LEVEL_DEBUG, format, params...)
}

// Info はINFOログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.log(LOG_LEVEL_INFO, format, params...)
}

// Warn はWARNログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.log(LOG_LEVEL_WARN, format, params...)
}

// Error はERRORログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.log(LOG_LEVEL_ERROR, format, params...)
}

// SetLevel は出力レベルを設定する。
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Set(toSlogLevel(level))
}

// Level は現在の出力レベルを返す。
func (l *Logger) Level() LogLevel {
	return fromSlogLevel(l.level.Level())
}

// IsEnabled は指定レベルが出力対象か判定する。
func (l *Logger) IsEnabled(level LogLevel) bool {
	return l.logger.Enabled(context.Background(), toSlogLevel(level))
}

// log は書式化してslogへ渡す。
func (l *Logger) log(level LogLevel, format string, params ...any) {
	slogLevel := toSlogLevel(level)
	if !l.logger.Enabled(context.Background(), slogLevel) {
		return
	}
	message := format
	if len(params) > 0 {
		message = fmt.Sprintf(format, params...)
	}
	l.logger.Log(context.Background(), slogLevel, message)
}

// ParseLevel は文字列からログレベルを解決する。
func ParseLevel(value string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LOG_LEVEL_DEBUG, nil
	case "", "info":
		return LOG_LEVEL_INFO, nil
	case "warn", "warning":
		return LOG_LEVEL_WARN, nil
	case "error":
		return LOG_LEVEL_ERROR, nil
	default:
		return LOG_LEVEL_INFO, fmt.Errorf("未対応のログレベルです: %s", value)
	}
}

// toSlogLevel はslogのレベルへ変換する。
func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LOG_LEVEL_DEBUG:
		return slog.LevelDebug
	case LOG_LEVEL_WARN:
		return slog.LevelWarn
	case LOG_LEVEL_ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fromSlogLevel はslogのレベルから変換する。
func fromSlogLevel(level slog.Level) LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return LOG_LEVEL_DEBUG
	case level <= slog.LevelInfo:
		return LOG_LEVEL_INFO
	case level <= slog.LevelWarn:
		return LOG_LEVEL_WARN
	default:
		return LOG_LEVEL_ERROR
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger ILogger = NewLogger(nil)
)

// DefaultLogger は共有ロガーを返す。
func DefaultLogger() ILogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は共有ロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

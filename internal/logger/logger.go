package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogLevel はプロセス全体のログレベル。起動後に SetLevel で変更できる。
	LogLevel = zap.NewAtomicLevel()
	// Logger はグローバルなロガー。
	Logger *zap.Logger
)

func init() {
	config := zap.NewProductionConfig()
	config.Level = LogLevel

	// Cloud Run は stdout からログを収集する
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	// Cloud Logging のフィールド名に合わせる
	config.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var err error
	Logger, err = config.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(Logger)
}

/**
 * SetLevel は "debug" "info" "warn" "error" のいずれかでレベルを切り替える。
 * 解釈できない値の場合はレベルを変えずにエラーを返す。
 */
func SetLevel(level string) error {
	l := strings.ToLower(strings.TrimSpace(level))
	if l == "" {
		return nil
	}
	return LogLevel.UnmarshalText([]byte(l))
}

// Sync はバッファに残ったログを書き出す。終了直前に呼ぶ。
func Sync() {
	_ = Logger.Sync()
}

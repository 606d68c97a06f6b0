package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
)

// ErrAPIKeyMissing は生成サービスの認証情報が環境変数にないことを表す。
var ErrAPIKeyMissing = errors.New("config: api key is not set")

var loadDotEnvOnce sync.Once

// LoadDotEnv は .env が存在すれば 1 度だけ読み込む。
func LoadDotEnv() {
	loadDotEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		if err := godotenv.Load(); err != nil {
			logger.Logger.Warn(".env の読み込みに失敗しました", zap.Error(err))
		}
	})
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

/**
 * getDuration は "15s" のような値に加えて秒数だけの指定も受け付ける。
 * 解釈できない値は警告を出して既定値にする。
 */
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if sec, err := strconv.Atoi(value); err == nil {
		return time.Duration(sec) * time.Second
	}
	logger.Logger.Warn("時間指定を解釈できないため既定値を使います",
		zap.String("key", key),
		zap.String("value", value),
		zap.Duration("default", defaultValue))
	return defaultValue
}

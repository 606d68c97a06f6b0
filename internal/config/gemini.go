package config

import (
	"fmt"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"

	envGeminiAPIKey = "GEMINI_API_KEY"
	envGeminiModel  = "GEMINI_MODEL"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

/**
 * 環境変数から読み込んでGemini連携に使用
 */
func LoadGeminiConfigFromEnv() (*GeminiConfig, error) {
	key := getEnv(envGeminiAPIKey, "")
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrAPIKeyMissing, envGeminiAPIKey)
	}

	return &GeminiConfig{
		APIKey: key,
		Model:  getEnv(envGeminiModel, DefaultGeminiModel),
	}, nil
}

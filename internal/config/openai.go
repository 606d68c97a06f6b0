package config

import (
	"fmt"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"

	envOpenAIAPIKey  = "OPENAI_API_KEY"
	envOpenAIModel   = "OPENAI_MODEL"
	envOpenAIBaseURL = "OPENAI_BASE_URL"
)

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

/**
 * 環境変数から読み込んで OpenAI 連携に使用する。
 * 下書きリクエストごとに呼ばれるため、起動後にキーを設定しても反映される。
 */
func LoadOpenAIConfigFromEnv() (*OpenAIConfig, error) {
	key := getEnv(envOpenAIAPIKey, "")
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrAPIKeyMissing, envOpenAIAPIKey)
	}

	return &OpenAIConfig{
		APIKey:  key,
		Model:   getEnv(envOpenAIModel, DefaultOpenAIModel),
		BaseURL: getEnv(envOpenAIBaseURL, ""),
	}, nil
}

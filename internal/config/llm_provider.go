package config

import (
	"strings"
)

const envLLMProvider = "LLM_PROVIDER"

// 下書き生成に使うサービス。
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LoadLLMProvider は未設定や未知の値なら openai を返す。
func LoadLLMProvider() string {
	switch provider := strings.ToLower(getEnv(envLLMProvider, "")); provider {
	case ProviderOpenAI, ProviderGemini:
		return provider
	default:
		return ProviderOpenAI
	}
}

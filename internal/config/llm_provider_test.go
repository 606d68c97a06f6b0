package config

import (
	"testing"
)

func TestLoadLLMProvider(t *testing.T) {
	cases := []struct {
		env  string
		want string
	}{
		{env: "openai", want: ProviderOpenAI},
		{env: "Gemini", want: ProviderGemini},
		{env: "unknown", want: ProviderOpenAI},
		{env: "", want: ProviderOpenAI},
	}
	for _, tc := range cases {
		t.Setenv(envLLMProvider, tc.env)
		if got := LoadLLMProvider(); got != tc.want {
			t.Fatalf("LLM_PROVIDER=%q: expected %s, got %s", tc.env, tc.want, got)
		}
	}
}

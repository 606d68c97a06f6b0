package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/config"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
)

const maxOutputTokens = 4096

/**
 * OpenAI へ会話リクエストを送るのに必要な最小限の操作をまとめた窓口。
 */
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

/**
 * OpenAI のチャット補完で下書きの JSON を生成する本体。
 */
type Generator struct {
	client ChatClient
	model  string
}

/**
 * API キーやモデル名を点検してから OpenAI との橋渡し役を組み立てる。
 */
func NewGenerator(apiKey, model, baseURL string) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: openai: API キーが設定されていません", llm.ErrGeneratorNotConfigured)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

/**
 * OpenAI クライアントは後片付け不要なので互換性のためだけに戻り値を返す。
 */
func (g *Generator) Close() error {
	return nil
}

/**
 * システム指示と依頼本文を 1 往復だけ送り、最初の応答テキストを返す。
 * 出力は JSON オブジェクトに限定するが、中身の検証は呼び出し側に任せる。
 */
func (g *Generator) Generate(ctx context.Context, prompt *llm.Prompt) (string, error) {
	if prompt == nil || strings.TrimSpace(prompt.User) == "" {
		return "", llm.ErrInvalidPrompt
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: wireTemperature(prompt.Temperature),
		MaxTokens:   maxOutputTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrGeneratorUnavailable, err)
	}

	text, err := extractFirstText(resp)
	if err != nil {
		return "", err
	}

	logger.Logger.Debug("openai から応答を受信しました",
		zap.String("model", g.model),
		zap.Float32("temperature", prompt.Temperature),
		zap.Int("output_length", len(text)))
	return text, nil
}

/**
 * go-openai は Temperature が 0 だと送信時に省略し、サービス側の既定値（1.0）が使われてしまう。
 * 0 を指定したい場合は表現できる最小の正の値に置き換える。
 */
func wireTemperature(t float32) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

/**
 * OpenAI の返答から最初に意味を持つテキストを拾い、余白を取り除いて返す。
 */
func extractFirstText(resp openai.ChatCompletionResponse) (string, error) {
	for _, choice := range resp.Choices {
		if trimmed := strings.TrimSpace(choice.Message.Content); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", llm.ErrEmptyOutput
}

/**
 * Factory はリクエストのたびに環境変数から設定を読み、Generator を組み立てる。
 * キーが無ければサービスへ接続せずに設定エラーを返す。
 */
type Factory struct {
	loadConfig   func() (*config.OpenAIConfig, error)
	newGenerator func(apiKey, model, baseURL string) (*Generator, error)
}

func NewFactory() *Factory {
	return &Factory{
		loadConfig:   config.LoadOpenAIConfigFromEnv,
		newGenerator: NewGenerator,
	}
}

func (f *Factory) Open(ctx context.Context) (llm.Generator, func() error, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyMissing) {
			return nil, nil, fmt.Errorf("%w: %v", llm.ErrGeneratorNotConfigured, err)
		}
		return nil, nil, err
	}
	gen, err := f.newGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	return gen, gen.Close, nil
}

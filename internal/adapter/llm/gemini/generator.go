package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/config"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
)

const (
	maxOutputTokens  = 4096
	jsonResponseMIME = "application/json"
)

var newGeminiClient = genai.NewClient

// Gemini の生成モデルをテスト用に差し替えやすくしたインターフェース。
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

/**
 * Gemini で下書きの JSON を生成する本体。
 * システム指示と温度は呼び出しごとに変わるため、モデルは毎回組み立てる。
 */
type Generator struct {
	newModel  func(system string, temperature float32) contentGenerator
	closeFn   func() error
	modelName string
}

/**
 * API キーなどの設定から Gemini への窓口を構築し、生成器を返す。
 * 必須情報が欠けていたり、接続ができないときはその旨を伝えて終了する。
 */
func NewGenerator(ctx context.Context, apiKey, modelName string, extraOpts ...option.ClientOption) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini: API キーが設定されていません", llm.ErrGeneratorNotConfigured)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extraOpts...)
	client, err := newGeminiClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneratorUnavailable, err)
	}

	resolved := resolveModelName(modelName)
	return &Generator{
		newModel: func(system string, temperature float32) contentGenerator {
			return configureModel(client.GenerativeModel(resolved), system, temperature)
		},
		closeFn:   makeCloseFn(client),
		modelName: resolved,
	}, nil
}

/**
 * 内部で保持している接続を後片付けする。
 * そもそも接続していない場合は何もせずに戻る。
 */
func (g *Generator) Close() error {
	if g == nil || g.closeFn == nil {
		return nil
	}
	return g.closeFn()
}

/**
 * 依頼本文を 1 回だけ送り、最初の候補のテキストをそのまま返す。
 */
func (g *Generator) Generate(ctx context.Context, prompt *llm.Prompt) (string, error) {
	if prompt == nil || strings.TrimSpace(prompt.User) == "" {
		return "", llm.ErrInvalidPrompt
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if g.newModel == nil {
		return "", fmt.Errorf("%w: gemini: 生成器が初期化されていません", llm.ErrGeneratorUnavailable)
	}

	model := g.newModel(prompt.System, prompt.Temperature)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrGeneratorUnavailable, err)
	}

	text, err := extractFirstText(resp)
	if err != nil {
		return "", err
	}

	logger.Logger.Debug("gemini から応答を受信しました",
		zap.String("model", g.modelName),
		zap.Float32("temperature", prompt.Temperature),
		zap.Int("output_length", len(text)))
	return text, nil
}

/**
 * モデル名の指定が空だった場合、既定の名前へ置き換える。
 */
func resolveModelName(name string) string {
	if strings.TrimSpace(name) == "" {
		return config.DefaultGeminiModel
	}
	return name
}

/**
 * Gemini の応答候補から先頭の文章を取り出す。
 * 何も得られない場合は空の出力として扱う。
 */
func extractFirstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", llm.ErrEmptyOutput
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				if trimmed := strings.TrimSpace(string(text)); trimmed != "" {
					return trimmed, nil
				}
			}
		}
	}
	return "", llm.ErrEmptyOutput
}

/**
 * 候補数・出力上限・温度・システム指示を設定し、JSON だけを返させる。
 */
func configureModel(model *genai.GenerativeModel, system string, temperature float32) contentGenerator {
	if model == nil {
		return nil
	}
	model.SetCandidateCount(1)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SetTemperature(temperature)
	model.ResponseMIMEType = jsonResponseMIME
	if strings.TrimSpace(system) != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	return model
}

/**
 * クライアントが存在する場合だけ後片付け用の関数を返す。
 */
func makeCloseFn(client *genai.Client) func() error {
	if client == nil {
		return nil
	}
	return client.Close
}

/**
 * Factory はリクエストのたびに環境変数から設定を読み、Generator を組み立てる。
 */
type Factory struct {
	loadConfig func() (*config.GeminiConfig, error)
}

func NewFactory() *Factory {
	return &Factory{loadConfig: config.LoadGeminiConfigFromEnv}
}

func (f *Factory) Open(ctx context.Context) (llm.Generator, func() error, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyMissing) {
			return nil, nil, fmt.Errorf("%w: %v", llm.ErrGeneratorNotConfigured, err)
		}
		return nil, nil, err
	}
	gen, err := NewGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	return gen, gen.Close, nil
}

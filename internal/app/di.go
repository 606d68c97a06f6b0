package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/adapter/eml"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/adapter/http/handler"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/adapter/llm/gemini"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/adapter/llm/openai"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/config"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
	draftusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/draft"
	exportusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/export"
)

// Container は API と CLI で使用する依存を保持する。
type Container struct {
	Provider      string
	Profile       *sender.Profile
	DraftUsecase  *draftusecase.Usecase
	ExportUsecase *exportusecase.Usecase
	DraftHandler  *handler.DraftHandler
	ExportHandler *handler.ExportHandler
}

// テストで差し替えるための生成関数。
var (
	loadSenderProfile = config.LoadSenderProfile
	loadProvider      = config.LoadLLMProvider
	generatorFactory  = newGeneratorFactory
)

/**
 * 依存を初期化して返す。
 * 生成サービスの認証情報はここでは読まず、リクエストごとにファクトリが読む。
 */
func NewContainer(ctx context.Context) (*Container, error) {
	config.LoadDotEnv()

	profile, err := loadSenderProfile()
	if err != nil {
		return nil, fmt.Errorf("load sender profile: %w", err)
	}

	provider := loadProvider()
	generators, err := generatorFactory(provider)
	if err != nil {
		return nil, fmt.Errorf("init generator factory: %w", err)
	}

	draftUC := draftusecase.NewUsecase(generators, profile)
	exportUC := exportusecase.NewUsecase(eml.NewEncoder())

	logger.Logger.Info("依存を初期化しました",
		zap.String("provider", provider),
		zap.String("sender", profile.Name()))

	return &Container{
		Provider:      provider,
		Profile:       profile,
		DraftUsecase:  draftUC,
		ExportUsecase: exportUC,
		DraftHandler:  handler.NewDraftHandler(draftUC),
		ExportHandler: handler.NewExportHandler(exportUC),
	}, nil
}

/**
 * 保持している接続はリクエスト単位で閉じているため、ここで閉じるものはない。
 */
func (c *Container) Close() error {
	return nil
}

func newGeneratorFactory(provider string) (llm.GeneratorFactory, error) {
	switch provider {
	case config.ProviderOpenAI:
		return openai.NewFactory(), nil
	case config.ProviderGemini:
		return gemini.NewFactory(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", provider)
	}
}

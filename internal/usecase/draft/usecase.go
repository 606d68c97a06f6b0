package draft

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/thread"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
)

var (
	// ErrNilInput はユースケースに nil 入力が渡された際に返される。
	ErrNilInput = errors.New("draft: input is nil")
)

// 下書き作成後に呼び出し側へ返す値
type Output struct {
	Response  domain.Response
	Attempts  int
	CutReason string
}

/**
 * 下書き作成のユースケース
 * generators: リクエストごとに生成サービスを用意するファクトリ
 */
type Usecase struct {
	generators   llm.GeneratorFactory
	prompts      *PromptBuilder
	orchestrator *Orchestrator
	composer     *Composer
}

func NewUsecase(generators llm.GeneratorFactory, profile *sender.Profile) *Usecase {
	prompts := NewPromptBuilder(profile)
	return &Usecase{
		generators:   generators,
		prompts:      prompts,
		orchestrator: NewOrchestrator(prompts),
		composer:     NewComposer(profile),
	}
}

/**
 * 下書き作成の実行
 * 入力検証 → 返信対象の切り出し → 生成と検証（最大 2 回）→ 宛名と署名の付与 の順に進む。
 * 入力エラーと設定エラーの場合は生成サービスを呼ばない。
 */
func (u *Usecase) Execute(ctx context.Context, in *domain.Input) (*Output, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	req, err := domain.NewRequest(*in)
	if err != nil {
		return nil, err
	}

	target, background, cutReason := u.selectTarget(req)

	gen, closeFn, err := u.generators.Open(ctx)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		defer func() {
			if err := closeFn(); err != nil {
				logger.Logger.Warn("生成サービスの後片付けに失敗しました", zap.Error(err))
			}
		}()
	}

	fields := []zap.Field{
		zap.String("mode", string(req.Mode)),
		zap.String("language", string(req.Language)),
		zap.String("tone", string(req.Tone)),
		zap.String("cut_reason", cutReason),
		zap.Int("target_length", len(target)),
		zap.Int("background_length", len(background)),
	}

	task := u.prompts.Task(req, target, background)
	outcome, err := u.orchestrator.Run(ctx, gen, req.Language, task)
	fields = append(fields, zap.Int("attempts", outcome.Attempts), zap.Stringer("state", outcome.State))
	if err != nil {
		logger.Logger.Error("下書きの生成に失敗しました", append(fields, zap.Error(err))...)
		return nil, err
	}

	// 上限での切り詰めは解析時に済んでいる。宛名と署名の分はそのまま足す。
	resp := domain.Response{
		Subject: outcome.Response.Subject,
		Body:    u.composer.Compose(req.Language, req.To, outcome.Response.Body),
	}

	logger.Logger.Info("下書きを作成しました", append(fields, zap.Int("body_length", len(resp.Body)))...)

	return &Output{
		Response:  resp,
		Attempts:  outcome.Attempts,
		CutReason: cutReason,
	}, nil
}

/**
 * 返信モードはスレッドから返信対象を切り出し、全文を参考情報にする。
 * 新規作成モードは目的を対象にし、元テキストがあれば参考情報にする。
 */
func (u *Usecase) selectTarget(req domain.Request) (target, background, cutReason string) {
	if req.Mode == domain.ModeScratch {
		return ScratchGoal(req), req.RequestText, ""
	}
	ex := thread.Extract(req.RequestText)
	return ex.ReplyTarget, ex.Background, ex.CutReason
}

package draft

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
)

// ErrFormatMismatch は 2 回とも言語・形式の検証に通らなかったことを表す。
var ErrFormatMismatch = errors.New("draft: model output did not match requested language/format")

// State は生成の進行状態。
type State int

const (
	StateInit State = iota
	StateAttempt1
	StateAttempt2
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAttempt1:
		return "attempt1"
	case StateAttempt2:
		return "attempt2"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

/**
 * Next は検証結果から次の状態を決める。
 * 1 回目に失敗したときだけ 2 回目へ進み、2 回目の失敗は終端。
 */
func Next(s State, valid bool) State {
	switch s {
	case StateInit:
		return StateAttempt1
	case StateAttempt1:
		if valid {
			return StateDone
		}
		return StateAttempt2
	case StateAttempt2:
		if valid {
			return StateDone
		}
		return StateFailed
	default:
		return s
	}
}

// attemptPolicy は各試行の指示の強さと温度。
type attemptPolicy struct {
	hardened    bool
	temperature float32
}

var attemptPolicies = map[State]attemptPolicy{
	StateAttempt1: {hardened: false, temperature: 0.2},
	StateAttempt2: {hardened: true, temperature: 0},
}

// Outcome は生成の結果。Attempts はサービスを呼んだ回数（最大 2）。
type Outcome struct {
	Response domain.Response
	Attempts int
	State    State
}

/**
 * Orchestrator は「生成 → 解析 → 検証」を最大 2 回まで順番に行う。
 * 再試行するのは検証に落ちたときだけで、通信エラーや解析エラーはその場で失敗にする。
 */
type Orchestrator struct {
	prompts *PromptBuilder
}

func NewOrchestrator(prompts *PromptBuilder) *Orchestrator {
	return &Orchestrator{prompts: prompts}
}

func (o *Orchestrator) Run(ctx context.Context, gen llm.Generator, lang domain.Language, task string) (Outcome, error) {
	out := Outcome{State: Next(StateInit, false)}

	for {
		policy, ok := attemptPolicies[out.State]
		if !ok {
			break
		}

		system := o.prompts.Base()
		if policy.hardened {
			system = o.prompts.Hardened(lang)
		}

		out.Attempts++
		raw, err := gen.Generate(ctx, &llm.Prompt{
			System:      system,
			User:        task,
			Temperature: policy.temperature,
		})
		if err != nil {
			out.State = StateFailed
			return out, err
		}

		resp, err := ParseOutput(raw)
		if err != nil {
			out.State = StateFailed
			return out, err
		}

		valid := accepts(lang, resp)
		logger.Logger.Debug("生成結果を検証しました",
			zap.Stringer("state", out.State),
			zap.Float32("temperature", policy.temperature),
			zap.Bool("valid", valid),
			zap.Int("subject_length", len(resp.Subject)),
			zap.Int("body_length", len(resp.Body)))

		next := Next(out.State, valid)
		if next == StateAttempt2 {
			logger.Logger.Warn("言語・形式の検証に失敗したため強い指示で再生成します",
				zap.String("language", string(lang)))
		}
		if next == StateDone {
			out.Response = resp
		}
		out.State = next
	}

	if out.State != StateDone {
		return out, ErrFormatMismatch
	}
	return out, nil
}

// accepts は件名が空でなく、本文が指定の言語構成を満たすかを確かめる。
func accepts(lang domain.Language, resp domain.Response) bool {
	return resp.Subject != "" && lang.Accepts(resp.Body)
}

package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
)

// ErrNoMoreReplies は用意した応答を使い切った後に呼ばれたときに返す。
var ErrNoMoreReplies = errors.New("testutil: no more scripted replies")

// Reply はスタブが 1 回の呼び出しで返す値。
type Reply struct {
	Text string
	Err  error
}

/**
 * 呼び出し順に決まった応答を返す生成サービスのスタブ。
 * 受け取った指示はすべて記録する。
 */
type StubGenerator struct {
	mu      sync.Mutex
	Replies []Reply
	Prompts []llm.Prompt
}

/**
 * テキストだけの応答を順に返すスタブを作る。
 */
func NewStubGenerator(texts ...string) *StubGenerator {
	replies := make([]Reply, 0, len(texts))
	for _, t := range texts {
		replies = append(replies, Reply{Text: t})
	}
	return &StubGenerator{Replies: replies}
}

/**
 * 指示を記録し、次の応答を返す。
 */
func (g *StubGenerator) Generate(ctx context.Context, prompt *llm.Prompt) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prompt != nil {
		g.Prompts = append(g.Prompts, *prompt)
	}
	idx := len(g.Prompts) - 1
	if idx < 0 || idx >= len(g.Replies) {
		return "", ErrNoMoreReplies
	}
	return g.Replies[idx].Text, g.Replies[idx].Err
}

// Calls は Generate が呼ばれた回数。
func (g *StubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}

/**
 * 生成器を 1 つだけ配るファクトリのスタブ。
 * OpenErr を設定すると設定エラーなどを再現できる。
 */
type StubFactory struct {
	Generator llm.Generator
	OpenErr   error
	Opened    int
	Closed    int
}

func (f *StubFactory) Open(ctx context.Context) (llm.Generator, func() error, error) {
	f.Opened++
	if f.OpenErr != nil {
		return nil, nil, f.OpenErr
	}
	return f.Generator, func() error {
		f.Closed++
		return nil
	}, nil
}

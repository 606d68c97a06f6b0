package llm

import (
	"context"
	"errors"
)

var (
	ErrGeneratorNotConfigured = errors.New("llm: 生成サービスの認証情報が設定されていません")
	ErrGeneratorUnavailable   = errors.New("llm: 生成サービスに接続できません")
	ErrEmptyOutput            = errors.New("llm: 生成結果が空です")
	ErrInvalidPrompt          = errors.New("llm: 指示が空です")
)

/**
 * 生成サービスへ渡す 1 回分の指示
 * @param System システム指示（役割・出力形式・言語ルール）
 * @param User 依頼本文（返信対象や目的、設定の再確認）
 * @param Temperature サンプリング温度。0 は最も決定的な出力を求める
 */
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

/**
 * 生成サービスの契約
 * Generate: 指示を 1 回だけ送り、加工前のテキストをそのまま返す。
 * 返ってきた文字列の解釈と検証は呼び出し側の責務で、サービスの自己申告は信用しない。
 */
type Generator interface {
	Generate(ctx context.Context, prompt *Prompt) (string, error)
}

/**
 * リクエストごとに Generator を用意する。
 * 認証情報が無い場合は ErrGeneratorNotConfigured を返し、サービスへは接続しない。
 * 戻り値の関数は使い終わった接続の後片付けに使う。
 */
type GeneratorFactory interface {
	Open(ctx context.Context) (Generator, func() error, error)
}

// GeneratorFactoryFunc は関数を GeneratorFactory として扱うためのアダプター。
type GeneratorFactoryFunc func(ctx context.Context) (Generator, func() error, error)

func (f GeneratorFactoryFunc) Open(ctx context.Context) (Generator, func() error, error) {
	return f(ctx)
}

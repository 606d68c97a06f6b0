package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/script"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/draft/testutil"
)

func newTestUsecase(gen llm.Generator) (*Usecase, *testutil.StubFactory) {
	factory := &testutil.StubFactory{Generator: gen}
	return NewUsecase(factory, sender.Default()), factory
}

func TestUsecase_Execute_ReplyInEnglish(t *testing.T) {
	t.Parallel()

	gen := testutil.NewStubGenerator(
		`{"subject":"Re: Report","body":"Thank you for your message. I will send the report by Friday.\n\nBest regards,\nHitoshi Eguchi"}`,
	)
	uc, factory := newTestUsecase(gen)

	out, err := uc.Execute(context.Background(), &domain.Input{
		Mode:        "reply",
		RequestText: "Could you send me the report?\nFrom: someone@example.com\nSent: Monday\n\nOlder content here.",
		Language:    "English",
		To:          "Imaeda/Ms. Imaeda",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.CutReason != "cut-before:From:" || out.Attempts != 1 {
		t.Fatalf("unexpected diagnostics: %+v", out)
	}
	task := gen.Prompts[0].User
	if !strings.Contains(task, "REPLY TARGET (RESPOND ONLY TO THIS):\nCould you send me the report?\n\n") {
		t.Fatalf("返信対象が最初の行だけになっていません:\n%s", task)
	}

	body := out.Response.Body
	if !strings.HasPrefix(body, "Ms. Imaeda\n\n") {
		t.Fatalf("英語の宛名で始まっていません: %q", body)
	}
	if !strings.HasSuffix(body, "\n\n"+enSignature) {
		t.Fatalf("英語の署名で終わっていません: %q", body)
	}
	if strings.Count(body, "Hitoshi Eguchi") != 1 {
		t.Fatalf("署名が重複しています: %q", body)
	}
	if n := script.CountLocal(body); n != 0 {
		t.Fatalf("日本語が %d 文字含まれています: %q", n, body)
	}
	if out.Response.Subject != "Re: Report" {
		t.Fatalf("unexpected subject: %q", out.Response.Subject)
	}
	if factory.Closed != 1 {
		t.Fatalf("生成器が後片付けされていません: %d", factory.Closed)
	}
}

func TestUsecase_Execute_BilingualFormatMismatch(t *testing.T) {
	t.Parallel()

	noDivider := `{"subject":"件名","body":"ご連絡ありがとうございます。承知しました。 Thank you for your message, noted."}`
	gen := testutil.NewStubGenerator(noDivider, noDivider)
	uc, _ := newTestUsecase(gen)

	out, err := uc.Execute(context.Background(), &domain.Input{
		RequestText: "会議資料をご確認ください。",
		Language:    "Bilingual",
		To:          "今枝さん/Ms. Imaeda",
	})
	if !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("expected ErrFormatMismatch, got %v", err)
	}
	if out != nil {
		t.Fatalf("失敗時に出力を返してはいけません: %+v", out)
	}
	if gen.Calls() != 2 {
		t.Fatalf("expected 2 calls, got %d", gen.Calls())
	}
}

func TestUsecase_Execute_BilingualRecoveredOnRetry(t *testing.T) {
	t.Parallel()

	gen := testutil.NewStubGenerator(
		`{"subject":"件名","body":"ご連絡ありがとうございます。"}`,
		`{"subject":"会議の件 / Meeting","body":"ご連絡ありがとうございます。承知しました。\n—————\nThank you for your message. I have noted the schedule."}`,
	)
	uc, _ := newTestUsecase(gen)

	out, err := uc.Execute(context.Background(), &domain.Input{
		Mode:        "scratch",
		PurposeNote: "会議日程の確認",
		Language:    "Bilingual",
		To:          "今枝さん/Ms. Imaeda",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "今枝さん\n\nご連絡ありがとうございます。承知しました。\n\n" + jaSignature +
		"\n-----\n" +
		"Ms. Imaeda\n\nThank you for your message. I have noted the schedule.\n\n" + enSignature
	if out.Response.Body != want {
		t.Fatalf("unexpected body:\n%q\nwant\n%q", out.Response.Body, want)
	}
	if out.Attempts != 2 || out.CutReason != "" {
		t.Fatalf("unexpected diagnostics: %+v", out)
	}
	if !strings.Contains(gen.Prompts[0].User, "GOAL / REQUEST (WHAT THE EMAIL SHOULD ACHIEVE):\n会議日程の確認") {
		t.Fatalf("目的メモが依頼文に入っていません:\n%s", gen.Prompts[0].User)
	}
}

func TestUsecase_Execute_FailsWithoutCallingService(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      *domain.Input
		openErr error
		wantErr error
		opened  int
	}{
		{name: "nil 入力", in: nil, wantErr: ErrNilInput},
		{name: "返信モードで本文なし", in: &domain.Input{PurposeNote: "x"}, wantErr: domain.ErrRequestTextRequired},
		{name: "新規作成で入力なし", in: &domain.Input{Mode: "scratch"}, wantErr: domain.ErrGoalRequired},
		{name: "未対応の言語", in: &domain.Input{RequestText: "x", Language: "German"}, wantErr: domain.ErrUnsupportedLanguage},
		{
			name:    "認証情報なし",
			in:      &domain.Input{RequestText: "x"},
			openErr: fmt.Errorf("%w: OPENAI_API_KEY", llm.ErrGeneratorNotConfigured),
			wantErr: llm.ErrGeneratorNotConfigured,
			opened:  1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gen := testutil.NewStubGenerator(validJapanese)
			factory := &testutil.StubFactory{Generator: gen, OpenErr: tc.openErr}
			uc := NewUsecase(factory, sender.Default())

			if _, err := uc.Execute(context.Background(), tc.in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if gen.Calls() != 0 {
				t.Fatalf("生成サービスを呼んではいけません: %d", gen.Calls())
			}
			if factory.Opened != tc.opened {
				t.Fatalf("Open の回数が想定外です: %d", factory.Opened)
			}
		})
	}
}

func TestUsecase_Execute_MalformedOutput(t *testing.T) {
	t.Parallel()

	gen := testutil.NewStubGenerator("Sorry, I can't do that.", validJapanese)
	uc, factory := newTestUsecase(gen)

	_, err := uc.Execute(context.Background(), &domain.Input{RequestText: "ご確認ください"})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
	if gen.Calls() != 1 {
		t.Fatalf("解析エラーでは再試行しないはずです: %d", gen.Calls())
	}
	if factory.Closed != 1 {
		t.Fatal("失敗時も生成器を後片付けするはずです")
	}
}

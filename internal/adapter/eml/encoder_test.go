package eml

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jhillyerd/enmime"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/message"
)

func TestEncoder_EncodeRoundTrip(t *testing.T) {
	draft := &message.Draft{
		To:      "imaeda@example.com",
		Cc:      "office@example.com",
		Subject: "会議の件について",
		Body:    "今枝さん\n\nご連絡ありがとうございます。\n\n江口　均\n北星学園大学\n英文学科",
	}

	var buf bytes.Buffer
	if err := NewEncoder().Encode(&buf, draft); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("書き出したファイルを読み戻せません: %v", err)
	}
	if got := env.GetHeader("Subject"); got != draft.Subject {
		t.Fatalf("unexpected subject: %q", got)
	}
	if got := env.GetHeader("To"); got != draft.To {
		t.Fatalf("unexpected to: %q", got)
	}
	if got := env.GetHeader("Cc"); got != draft.Cc {
		t.Fatalf("unexpected cc: %q", got)
	}
	if got := strings.TrimSpace(env.Text); got != draft.Body {
		t.Fatalf("unexpected body:\n%q", got)
	}
	if got := env.GetHeader("MIME-Version"); got != mimeVersion {
		t.Fatalf("unexpected mime version: %q", got)
	}
	if ct := env.GetHeader("Content-Type"); !strings.HasPrefix(ct, "text/plain") || !strings.Contains(strings.ToLower(ct), "utf-8") {
		t.Fatalf("unexpected content type: %q", ct)
	}
}

func TestEncoder_OmitsEmptyRecipients(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder().Encode(&buf, &message.Draft{Subject: "Hello", Body: "Body"}); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	raw := buf.String()
	if strings.Contains(raw, "To:") || strings.Contains(raw, "Cc:") {
		t.Fatalf("空の宛先ヘッダーが出力されています:\n%s", raw)
	}
}

func TestEncoder_NilDraft(t *testing.T) {
	if err := NewEncoder().Encode(&bytes.Buffer{}, nil); !errors.Is(err, message.ErrEncodeFailed) {
		t.Fatalf("expected ErrEncodeFailed, got %v", err)
	}
}

func TestEncoder_BodyIsReadableText(t *testing.T) {
	body := "今枝さん\n\nご連絡ありがとうございます。\r\n承知しました。"

	var buf bytes.Buffer
	if err := NewEncoder().Encode(&buf, &message.Draft{Subject: "会議の件", Body: body}); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	raw := buf.String()
	if !strings.Contains(raw, "Content-Transfer-Encoding: 8bit\r\n\r\n") {
		t.Fatalf("本文が 8bit で書かれていません:\n%s", raw)
	}
	if strings.Contains(raw, "base64") || strings.Contains(raw, "quoted-printable") {
		t.Fatalf("本文が符号化されています:\n%s", raw)
	}
	if !strings.Contains(raw, "今枝さん\r\n\r\nご連絡ありがとうございます。\r\n承知しました。\r\n") {
		t.Fatalf("本文がそのまま読めません:\n%s", raw)
	}

	env, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("書き出したファイルを読み戻せません: %v", err)
	}
	if got := strings.TrimSpace(env.Text); got != "今枝さん\n\nご連絡ありがとうございます。\n承知しました。" {
		t.Fatalf("unexpected body:\n%q", got)
	}
	if env.GetHeader("Subject") != "会議の件" {
		t.Fatalf("unexpected subject: %q", env.GetHeader("Subject"))
	}
}

func TestEncoder_LongLineFallsBackToEncodedBody(t *testing.T) {
	body := strings.Repeat("あ", 400)

	var buf bytes.Buffer
	if err := NewEncoder().Encode(&buf, &message.Draft{Subject: "Long", Body: body}); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	raw := buf.String()
	if strings.Contains(raw, "Content-Transfer-Encoding: 8bit") {
		t.Fatalf("998 オクテットを超える行を 8bit で書いてはいけません")
	}
	env, err := enmime.ReadEnvelope(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("書き出したファイルを読み戻せません: %v", err)
	}
	if got := strings.TrimSpace(env.Text); got != body {
		t.Fatalf("本文が復元できません: %d 文字", len([]rune(got)))
	}
}

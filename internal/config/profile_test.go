package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
)

const profileYAML = `
name: Taro Yamada
role: a law school dean
name_variants:
  - 山田 太郎
  - 山田
affiliations:
  - Law School
  - 法学部
signature:
  japanese: |
    山田　太郎
    法学部
  english: |
    Taro Yamada
    Law School
`

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadSenderProfile_Default(t *testing.T) {
	t.Setenv(envSenderProfileFile, "")

	p, err := LoadSenderProfile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LocalSignature() != sender.Default().LocalSignature() {
		t.Fatalf("組み込みのプロフィールが返っていません: %q", p.LocalSignature())
	}
}

func TestLoadSenderProfile_File(t *testing.T) {
	t.Setenv(envSenderProfileFile, writeProfile(t, profileYAML))

	p, err := LoadSenderProfile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "Taro Yamada" || p.Role() != "a law school dean" {
		t.Fatalf("unexpected profile: %s / %s", p.Name(), p.Role())
	}
	if p.LocalSignature() != "山田　太郎\n法学部" {
		t.Fatalf("unexpected japanese signature: %q", p.LocalSignature())
	}
	if p.ForeignSignature() != "Taro Yamada\nLaw School" {
		t.Fatalf("unexpected english signature: %q", p.ForeignSignature())
	}
}

func TestLoadSenderProfileFile_Errors(t *testing.T) {
	if _, err := LoadSenderProfileFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("存在しないファイルはエラーになるべきです")
	}

	if _, err := LoadSenderProfileFile(writeProfile(t, "name: x\nunknown: y\n")); err == nil {
		t.Fatal("未知のキーはエラーになるべきです")
	}

	_, err := LoadSenderProfileFile(writeProfile(t, "name: x\nsignature:\n  japanese: a\n"))
	if !errors.Is(err, sender.ErrSignatureRequired) {
		t.Fatalf("expected ErrSignatureRequired, got %v", err)
	}
}

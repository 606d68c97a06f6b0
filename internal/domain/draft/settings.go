package draft

import (
	"fmt"
	"strings"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/script"
)

// Mode は下書きの起点。返信か新規作成か。
type Mode string

const (
	ModeReply   Mode = "reply"
	ModeScratch Mode = "scratch"
)

// ParseMode は scratch 以外をすべて返信モードとして扱う。
func ParseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeScratch)) {
		return ModeScratch
	}
	return ModeReply
}

// Language は本文の言語構成。
type Language string

const (
	LanguageJapanese  Language = "Japanese"
	LanguageEnglish   Language = "English"
	LanguageBilingual Language = "Bilingual"
)

var languages = []Language{LanguageJapanese, LanguageEnglish, LanguageBilingual}

// ParseLanguage は空なら日本語、未知の値ならエラーを返す。
func ParseLanguage(raw string) (Language, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return LanguageJapanese, nil
	}
	for _, l := range languages {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

/**
 * Accepts は本文が指定の言語構成として合格かを判定する。
 * 生成結果の検証はすべてここを通り、モデルの自己申告は使わない。
 */
func (l Language) Accepts(body string) bool {
	t := strings.TrimSpace(body)
	if t == "" {
		return false
	}
	switch l {
	case LanguageBilingual:
		return script.IsBilingualFormatOK(t)
	case LanguageEnglish:
		return script.IsForeignEnough(t)
	default:
		return script.IsLocalEnough(t)
	}
}

// Tone は文面の調子。
type Tone string

const (
	TonePolite         Tone = "Polite"
	ToneNeutral        Tone = "Neutral"
	ToneAdministrative Tone = "Administrative"
)

var tones = []Tone{TonePolite, ToneNeutral, ToneAdministrative}

// ParseTone は空なら事務的な調子、未知の値ならエラーを返す。
func ParseTone(raw string) (Tone, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ToneAdministrative, nil
	}
	for _, t := range tones {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTone, s)
}

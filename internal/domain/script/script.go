package script

import (
	"strings"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/divider"
)

// 判定しきい値。日本語は件数のみ、英語は日本語の混入上限と英字の下限を併用する。
const (
	MinLocalChars        = 10
	MaxLocalInForeign    = 3
	MinForeignLetters    = 20
	expectedBilingualLen = 2
)

/**
 * 日本語の文字（ひらがな・カタカナ・CJK 統合漢字）を数える。
 * 範囲は U+3040〜U+30FF と U+3400〜U+9FFF。
 */
func CountLocal(text string) int {
	n := 0
	for _, r := range text {
		if isLocalRune(r) {
			n++
		}
	}
	return n
}

// CountForeignLetters は ASCII の英字を数える。
func CountForeignLetters(text string) int {
	n := 0
	for _, r := range text {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			n++
		}
	}
	return n
}

/**
 * 英語として十分かを判定する。
 * 日本語が 3 文字以下かつ英字が 20 文字以上なら true。
 */
func IsForeignEnough(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	return CountLocal(t) <= MaxLocalInForeign && CountForeignLetters(t) >= MinForeignLetters
}

// IsLocalEnough は日本語が 10 文字以上含まれているかを判定する。
func IsLocalEnough(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	return CountLocal(t) >= MinLocalChars
}

/**
 * 二言語本文が「日本語ブロック + 区切り + 英語ブロック」になっているかを判定する。
 * 区切りで 2 つに分かれない場合はその時点で不合格。
 */
func IsBilingualFormatOK(text string) bool {
	parts := divider.Split(strings.TrimSpace(text))
	if len(parts) != expectedBilingualLen {
		return false
	}
	return IsLocalEnough(parts[0]) && IsForeignEnough(parts[1])
}

func isLocalRune(r rune) bool {
	return (r >= 0x3040 && r <= 0x30FF) || (r >= 0x3400 && r <= 0x9FFF)
}

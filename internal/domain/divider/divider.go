package divider

import (
	"regexp"
	"strings"
)

// Token は日本語ブロックと英語ブロックを隔てる正規の区切り行。
const Token = "\n-----\n"

// 正規化を繰り返す上限。通常は 1 回で収束する。
const maxNormalizePasses = 4

// 正規の区切り行そのもの（前後の改行を除いたもの）。
var rule = strings.Trim(Token, "\n")

// dashLine は 3 文字以上のダッシュ類 (-, U+2010〜U+2014) だけでできた行。
var dashLine = regexp.MustCompile(`^[\-\x{2010}-\x{2014}]{3,}$`)

// padded は前後に余白が付いた正規形らしき区切り。
var padded = regexp.MustCompile(`\n[\s\p{Zs}]*-----[\s\p{Zs}]*\n`)

/**
 * ダッシュ罫線の揺れを正規の区切り行へそろえる。
 * 罫線は行単位で置き換えるため、改行を共有して隣り合う罫線もそれぞれ置き換わる。
 * 置換結果が変わらなくなるまで繰り返すため、2 回適用しても結果は同じ。
 */
func Normalize(text string) string {
	t := normalizeDashLines(text)
	for i := 0; i < maxNormalizePasses; i++ {
		before := t
		t = padded.ReplaceAllString(t, Token)
		if t == before {
			break
		}
	}
	return t
}

// normalizeDashLines は前後を改行に挟まれた罫線行を正規の区切り行に置き換える。
func normalizeDashLines(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}
	for i := 1; i < len(lines)-1; i++ {
		if dashLine.MatchString(lines[i]) {
			lines[i] = rule
		}
	}
	return strings.Join(lines, "\n")
}

// Split は正規化したうえで区切り行ごとに分割する。
func Split(text string) []string {
	return strings.Split(Normalize(text), Token)
}

// Join は 2 つのブロックを正規の区切り行でつなぐ。
func Join(local, foreign string) string {
	return local + Token + foreign
}

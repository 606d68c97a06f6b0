package signature

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
)

// 末尾の署名らしき断片を削る最大回数。
const maxStripPasses = 4

const (
	// 行頭から続く横線（U+2015 が 10 個）以降をまるごと落とす。
	longRulePattern = `\n{1,3}\x{2015}{10}(?s:.*)$`
	// 末尾に残った区切り線だけの行。
	dashTrailerPattern = `\n{1,3}[\-\x{2010}-\x{2014}]{3,}[\s\p{Zs}]*$`

	spaceRun = `[\s\p{Zs}]*`
)

/**
 * Stripper は生成本文の末尾に紛れ込んだ署名断片（区切り線、差出人名、所属行）を除去する。
 * パターン表は差出人プロフィールから一度だけ組み立て、以後は読み取り専用。
 */
type Stripper struct {
	patterns []*regexp.Regexp
}

// NewStripper はプロフィールの名前表記と所属表記からパターン表を作る。
func NewStripper(profile *sender.Profile) *Stripper {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(longRulePattern),
		regexp.MustCompile(dashTrailerPattern),
	}

	if names := alternation(profile.NameVariants()); names != "" {
		// 名前行は「, Chair」のようなカンマ以降の肩書きも含めて落とす。
		patterns = append(patterns, regexp.MustCompile(
			`(?i)\n{1,3}(?:`+names+`)`+spaceRun+`(?:,.*)?`+spaceRun+`$`,
		))
	}
	if affiliations := alternation(profile.Affiliations()); affiliations != "" {
		patterns = append(patterns, regexp.MustCompile(
			`(?i)\n{1,3}(?:`+affiliations+`)`+spaceRun+`$`,
		))
	}
	return &Stripper{patterns: patterns}
}

/**
 * Strip は末尾の署名断片を繰り返し削る。
 * 1 パスで全パターンを順に適用し、変化がなくなるか 4 パスに達したら止める。
 * 戻り値は前後の空白を除いたもの。
 */
func (s *Stripper) Strip(text string) string {
	t := trimEnd(text)
	for i := 0; i < maxStripPasses; i++ {
		before := t
		for _, re := range s.patterns {
			t = re.ReplaceAllString(t, "")
		}
		if t == before {
			break
		}
		t = trimEnd(t)
	}
	return strings.TrimSpace(t)
}

// Attach は署名がまだ含まれていなければ空行を挟んで末尾に付ける。
func Attach(body, block string) string {
	if strings.Contains(body, block) {
		return body
	}
	return body + "\n\n" + block
}

/**
 * alternation は表記の一覧を正規表現の選択肢にする。
 * 長い表記を先に並べ、表記中の空白は全角を含む任意長の空白として扱う。
 */
func alternation(values []string) string {
	sorted := append([]string(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	parts := make([]string, 0, len(sorted))
	for _, v := range sorted {
		words := strings.Fields(v)
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		parts = append(parts, strings.Join(quoted, spaceRun))
	}
	return strings.Join(parts, "|")
}

func trimEnd(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

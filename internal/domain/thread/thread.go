package thread

import (
	"strings"

	"golang.org/x/text/width"
)

// 抽出結果の理由タグ。
const (
	CutReasonEmpty    = "empty"
	CutReasonNoMarker = "no-marker"
	cutBeforePrefix   = "cut-before:"
)

/**
 * 引用された過去メールの先頭に現れるヘッダー項目名。
 * 行頭がこれらのいずれか + コロンで始まったら、そこから下は返信対象に含めない。
 * 全角英字や全角コロン（Ｆｒｏｍ：、差出人：）は幅を畳んでから照合する。
 */
var headerMarkers = []string{
	"差出人",
	"送信日時",
	"宛先",
	"件名",
	"From",
	"Sent",
	"To",
	"Subject",
}

const markerSuffix = ":"

// Extraction は返信対象と参考情報を切り分けた結果。
type Extraction struct {
	ReplyTarget string
	Background  string
	CutReason   string
}

// Cut は引用ヘッダーで切り取ったかどうかを返す。
func (e Extraction) Cut() bool {
	return strings.HasPrefix(e.CutReason, cutBeforePrefix)
}

/**
 * 貼り付けられたスレッド（最新のメールが先頭）から返信すべき部分を取り出す。
 * 最初に見つかった引用ヘッダー行の直前までを返信対象とし、全文は参考情報として残す。
 * ヘッダー行が先頭にあって切り取ると空になる場合は全文を返信対象にする。
 */
func Extract(raw string) Extraction {
	background := strings.TrimSpace(raw)
	if background == "" {
		return Extraction{CutReason: CutReasonEmpty}
	}

	offset, marker, ok := findMarkerLine(background)
	if !ok {
		return Extraction{
			ReplyTarget: background,
			Background:  background,
			CutReason:   CutReasonNoMarker,
		}
	}

	target := strings.TrimSpace(background[:offset])
	if target == "" {
		target = background
	}
	return Extraction{
		ReplyTarget: target,
		Background:  background,
		CutReason:   cutBeforePrefix + marker,
	}
}

// findMarkerLine は引用ヘッダーで始まる最初の行の開始位置と、照合したマーカーを返す。
func findMarkerLine(text string) (int, string, bool) {
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		line := text[start:]
		if end >= 0 {
			line = text[start : start+end]
		}

		if marker, ok := matchMarker(line); ok {
			return start, marker, true
		}

		if end < 0 {
			break
		}
		start += end + 1
	}
	return 0, "", false
}

func matchMarker(line string) (string, bool) {
	folded := width.Fold.String(line)
	for _, m := range headerMarkers {
		label := m + markerSuffix
		if strings.HasPrefix(folded, label) {
			return label, true
		}
	}
	return "", false
}

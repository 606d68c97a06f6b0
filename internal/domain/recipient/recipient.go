package recipient

import "strings"

// 宛名の区切り文字。「今枝さん/Ms. Imaeda」のように日本語名を先に書く。
const separator = "/"

// Address は日本語ブロックと英語ブロックそれぞれの宛名行。
type Address struct {
	Local   string
	Foreign string
}

/**
 * 宛先欄の文字列を日本語用と英語用の宛名に分ける。
 * 「/」で 2 つ以上に分かれたら先頭 2 つを使い、分かれなければ両方に同じ値を入れる。
 */
func Split(raw string) Address {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Address{}
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(s, separator) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) >= 2 {
		return Address{Local: parts[0], Foreign: parts[1]}
	}
	return Address{Local: s, Foreign: s}
}

// IsEmpty は宛名が一つも指定されていないかを返す。
func (a Address) IsEmpty() bool {
	return a.Local == "" && a.Foreign == ""
}

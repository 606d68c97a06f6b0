package divider

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "正規形はそのまま", in: "あ\n-----\nB", want: "あ\n-----\nB"},
		{name: "3 本のハイフン", in: "あ\n---\nB", want: "あ\n-----\nB"},
		{name: "長い罫線", in: "あ\n----------\nB", want: "あ\n-----\nB"},
		{name: "em ダッシュ", in: "あ\n———\nB", want: "あ\n-----\nB"},
		{name: "en ダッシュ混在", in: "あ\n-–-‐\nB", want: "あ\n-----\nB"},
		{name: "前後の余白", in: "あ\n  -----  \nB", want: "あ\n-----\nB"},
		{name: "空行に挟まれた区切り", in: "あ\n\n-----\n\nB", want: "あ\n-----\nB"},
		{name: "全角スペース", in: "あ\n　-----　\nB", want: "あ\n-----\nB"},
		{name: "2 本だけは区切りではない", in: "あ\n--\nB", want: "あ\n--\nB"},
		{name: "行頭でないダッシュは対象外", in: "あ ---\nB", want: "あ ---\nB"},
		{name: "区切りなし", in: "plain text", want: "plain text"},
		{name: "改行を共有する 2 本の罫線", in: "a\n---\n---\nb", want: "a\n-----\n-----\nb"},
		{name: "先頭行の罫線は対象外", in: "---\nB", want: "---\nB"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n---\n---\n",
		"a\n\n-----\n\n---\nb",
		"a\n-----\n \n---\nb",
		"x\n — — \ny",
		"日本語\n\n\n――――――――\n\nEnglish",
		"a\n———————\n\n\n-----\n\nb",
		strings.Repeat("-\n", 10),
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize is not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	parts := Split("日本語\n———\nEnglish")
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0] != "日本語" || parts[1] != "English" {
		t.Fatalf("unexpected parts: %q", parts)
	}

	if got := Split("区切りなし"); len(got) != 1 {
		t.Fatalf("expected single part, got %d", len(got))
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	if got := Join("あ", "B"); got != "あ\n-----\nB" {
		t.Fatalf("unexpected join: %q", got)
	}
}

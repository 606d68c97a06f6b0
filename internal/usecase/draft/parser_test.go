package draft

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
)

func TestParseOutput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want domain.Response
	}{
		{
			name: "素の JSON",
			in:   `{"subject":" 会議の件 ","body":"承知しました。\n"}`,
			want: domain.Response{Subject: "会議の件", Body: "承知しました。"},
		},
		{
			name: "前後に文章がある",
			in:   "Sure! Here is the draft:\n```json\n{\"subject\":\"Re: Schedule\",\"body\":\"Thank you.\"}\n```\nHope this helps.",
			want: domain.Response{Subject: "Re: Schedule", Body: "Thank you."},
		},
		{
			name: "項目が欠けている",
			in:   `{"body":"本文のみ"}`,
			want: domain.Response{Body: "本文のみ"},
		},
		{
			name: "文字列以外の値",
			in:   `{"subject":42,"body":"b"}`,
			want: domain.Response{Subject: "42", Body: "b"},
		},
		{
			name: "余計なキーは無視",
			in:   `{"subject":"s","body":"b","greeting":"Dear"}`,
			want: domain.Response{Subject: "s", Body: "b"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOutput(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseOutput mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOutput_CapsFields(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("あ", domain.MaxBodyRunes+50)
	in := `noise {"subject":"` + strings.Repeat("s", 500) + `","body":"` + long + `"} noise`

	got, err := ParseOutput(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len([]rune(got.Subject)); n != domain.MaxSubjectRunes {
		t.Fatalf("subject length = %d", n)
	}
	if n := len([]rune(got.Body)); n != domain.MaxBodyRunes {
		t.Fatalf("body length = %d", n)
	}
}

func TestParseOutput_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"JSON なし":     "I cannot help with that.",
		"壊れた JSON":    `Here: {"subject": "s", "body": }`,
		"空":          "   ",
		"オブジェクト以外": `null`,
	}
	for name, in := range cases {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseOutput(in); !errors.Is(err, ErrMalformedOutput) {
				t.Fatalf("expected ErrMalformedOutput, got %v", err)
			}
		})
	}
}

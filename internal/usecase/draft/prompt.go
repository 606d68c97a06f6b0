package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/divider"
	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
)

const (
	noneText        = "(none)"
	noGoalText      = "(no goal provided)"
	defaultRoleText = "a Japanese university department chair"
)

// 指示文中の区切り記号はエスケープした表記（"\n-----\n"）で見せる。
var dividerLiteral = strconv.Quote(divider.Token)

// 再試行時に言語ごとに追加する強制ルール。
var hardRequirements = map[domain.Language]string{
	domain.LanguageEnglish: `HARD ENGLISH REQUIREMENT:
- The entire subject and body MUST be English.
- Do NOT use Japanese characters at all in the body.`,
	domain.LanguageJapanese: `HARD JAPANESE REQUIREMENT:
- The entire subject and body MUST be Japanese.
- Do NOT use English sentences in the body.`,
	domain.LanguageBilingual: `HARD BILINGUAL REQUIREMENT:
- Japanese first, then exactly ` + dividerLiteral + `, then English.
- Japanese block MUST be Japanese.
- English block MUST be English (no Japanese characters).`,
}

/**
 * PromptBuilder は生成サービスに渡す指示文を組み立てる。
 * 差出人の名前と立場はプロフィールから差し込む。
 */
type PromptBuilder struct {
	profile *sender.Profile
}

func NewPromptBuilder(profile *sender.Profile) *PromptBuilder {
	return &PromptBuilder{profile: profile}
}

// Base は 1 回目の試行で使う基本の指示。
func (b *PromptBuilder) Base() string {
	role := b.profile.Role()
	if role == "" {
		role = defaultRoleText
	}
	name := b.profile.Name()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an email drafting assistant for %s.\n\n", role)

	sb.WriteString("ROLE (STRICT):\n")
	fmt.Fprintf(&sb, "- Sender is ALWAYS %s.\n", name)
	fmt.Fprintf(&sb, "- Write ONLY from %s's perspective.\n", name)
	sb.WriteString("- Never write as the recipient or as another office.\n\n")

	sb.WriteString("GREETING / SIGNATURE (STRICT):\n")
	sb.WriteString("- Do NOT include any greeting line (no recipient name line).\n")
	sb.WriteString("  The system will prepend it from the \"To\" field.\n")
	sb.WriteString("- Do NOT include any signature lines or sender name.\n")
	sb.WriteString("  The system will attach the signature.\n\n")

	sb.WriteString("TONE:\n")
	sb.WriteString("- Start with a brief polite acknowledgment (\"Thank you for your message\" / \"ご連絡ありがとうございます\"),\n")
	sb.WriteString("  then confirm, then state what you will do.\n\n")

	sb.WriteString("OUTPUT (STRICT):\n")
	sb.WriteString("- Return ONLY valid JSON: {\"subject\":\"...\",\"body\":\"...\"}\n")
	sb.WriteString("- No markdown, no extra keys.\n\n")

	sb.WriteString("LANGUAGE:\n")
	sb.WriteString("- Japanese: Japanese subject+body\n")
	sb.WriteString("- English: English subject+body\n")
	sb.WriteString("- Bilingual: Japanese, then exactly " + dividerLiteral + ", then English")
	return sb.String()
}

// Hardened は再試行用。基本の指示に言語ごとの強制ルールを足す。
func (b *PromptBuilder) Hardened(lang domain.Language) string {
	req, ok := hardRequirements[lang]
	if !ok {
		req = hardRequirements[domain.LanguageJapanese]
	}
	return b.Base() + "\n\n" + req
}

/**
 * Task は依頼本文を組み立てる。
 * 返信モードは返信対象と参考スレッドを分けて渡し、新規作成モードは目的と参考文を渡す。
 */
func (b *PromptBuilder) Task(req domain.Request, target, background string) string {
	var sb strings.Builder
	if req.Mode == domain.ModeScratch {
		sb.WriteString("TASK:\nDraft a NEW email (not a reply).\n\n")
		sb.WriteString("GOAL / REQUEST (WHAT THE EMAIL SHOULD ACHIEVE):\n")
		sb.WriteString(target + "\n\n")
		sb.WriteString("REFERENCE TEXT (optional; may be blank):\n")
		sb.WriteString(orNone(background) + "\n\n")
	} else {
		sb.WriteString("TASK:\nDraft an email reply.\n\n")
		sb.WriteString("REPLY TARGET (RESPOND ONLY TO THIS):\n")
		sb.WriteString(target + "\n\n")
		sb.WriteString("BACKGROUND CONTEXT (REFERENCE ONLY - DO NOT RESPOND DIRECTLY):\n")
		sb.WriteString(background + "\n\n")
	}

	sb.WriteString("PURPOSE NOTE (optional):\n")
	sb.WriteString(orNone(req.PurposeNote) + "\n\n")

	sb.WriteString("SETTINGS:\n")
	fmt.Fprintf(&sb, "- language: %s\n", req.Language)
	fmt.Fprintf(&sb, "- tone: %s\n\n", req.Tone)

	sb.WriteString("REMINDERS:\n")
	if req.Mode != domain.ModeScratch {
		sb.WriteString("- Respond ONLY to REPLY TARGET.\n")
	}
	sb.WriteString("- No greeting line. No signature. Output strict JSON only.")
	if req.Language == domain.LanguageBilingual {
		sb.WriteString("\n- Separate the Japanese and English blocks with exactly " + dividerLiteral + ".")
	}
	return sb.String()
}

// ScratchGoal は新規作成モードの目的。目的メモ、元テキスト、プレースホルダーの順に選ぶ。
func ScratchGoal(req domain.Request) string {
	switch {
	case req.PurposeNote != "":
		return req.PurposeNote
	case req.RequestText != "":
		return req.RequestText
	default:
		return noGoalText
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return noneText
	}
	return s
}

package draft

import (
	"strings"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/divider"
	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/recipient"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/sender"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/signature"
)

/**
 * Composer は検証済みの本文に宛名と署名を付けて最終的な本文にする。
 * 宛名と署名は生成サービスに任せず、常にここで決定的に付ける。
 */
type Composer struct {
	profile  *sender.Profile
	stripper *signature.Stripper
}

func NewComposer(profile *sender.Profile) *Composer {
	return &Composer{
		profile:  profile,
		stripper: signature.NewStripper(profile),
	}
}

// Compose は宛名の付与、署名の付与の順に適用する。
func (c *Composer) Compose(lang domain.Language, to recipient.Address, body string) string {
	return c.AttachSignature(lang, c.PrependSalutation(lang, to, body))
}

/**
 * PrependSalutation は言語構成に応じて宛名行と空行を先頭に付ける。
 * 二言語は各ブロックにそれぞれの宛名を付ける。区切りが見つからなければ何もしない。
 */
func (c *Composer) PrependSalutation(lang domain.Language, to recipient.Address, body string) string {
	t := strings.TrimSpace(body)

	switch lang {
	case domain.LanguageJapanese:
		return withSalutation(to.Local, t)
	case domain.LanguageEnglish:
		return withSalutation(to.Foreign, t)
	}

	parts := divider.Split(t)
	if len(parts) != 2 {
		// 区切りがない場合の扱いは署名側と揃えていない（署名は日本語だけ付ける）。
		return t
	}
	local := withSalutation(to.Local, strings.TrimSpace(parts[0]))
	foreign := withSalutation(to.Foreign, strings.TrimSpace(parts[1]))
	return strings.TrimSpace(divider.Join(local, foreign))
}

/**
 * AttachSignature は紛れ込んだ署名断片を削ってから、選択された言語の署名を付ける。
 * 同じ署名がすでにあれば付けない。
 * 二言語は先に区切りで分け、ブロックごとに削ってから署名を付ける。
 * 区切りが見つからない場合は全体を削って日本語の署名だけを付け、両方を混ぜない。
 */
func (c *Composer) AttachSignature(lang domain.Language, body string) string {
	local := c.profile.LocalSignature()
	foreign := c.profile.ForeignSignature()

	switch lang {
	case domain.LanguageJapanese:
		return signature.Attach(divider.Normalize(c.stripper.Strip(body)), local)
	case domain.LanguageEnglish:
		return signature.Attach(divider.Normalize(c.stripper.Strip(body)), foreign)
	}

	parts := divider.Split(strings.TrimSpace(body))
	if len(parts) != 2 {
		return signature.Attach(divider.Normalize(c.stripper.Strip(body)), local)
	}
	localBlock := signature.Attach(c.stripper.Strip(parts[0]), local)
	foreignBlock := signature.Attach(c.stripper.Strip(parts[1]), foreign)
	return strings.TrimSpace(divider.Join(localBlock, foreignBlock))
}

func withSalutation(name, body string) string {
	if name == "" {
		return body
	}
	return name + "\n\n" + body
}

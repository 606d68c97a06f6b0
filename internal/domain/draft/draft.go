package draft

import (
	"errors"
	"strings"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/recipient"
)

// 入力と出力の上限（文字数）。
const (
	MaxRequestTextRunes = 50000
	MaxPurposeNoteRunes = 2000
	MaxSubjectRunes     = 300
	MaxBodyRunes        = 20000
)

var (
	ErrRequestTextRequired = errors.New("draft: requestText is required in reply mode")
	ErrGoalRequired        = errors.New("draft: requestText or purposeNote is required in scratch mode")
	ErrUnsupportedLanguage = errors.New("draft: unsupported language")
	ErrUnsupportedTone     = errors.New("draft: unsupported tone")
)

// Input はクライアントから届いたままの値。
type Input struct {
	Mode        string
	RequestText string
	PurposeNote string
	Language    string
	Tone        string
	To          string
}

// Request は正規化と検証を終えた下書き依頼。
type Request struct {
	Mode        Mode
	RequestText string
	PurposeNote string
	Language    Language
	Tone        Tone
	To          recipient.Address
}

/**
 * NewRequest は入力を正規化し、モードごとの必須条件を検証する。
 * 返信モードは requestText 必須、新規作成モードは requestText か purposeNote のどちらかが必要。
 */
func NewRequest(in Input) (Request, error) {
	lang, err := ParseLanguage(in.Language)
	if err != nil {
		return Request{}, err
	}
	tone, err := ParseTone(in.Tone)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Mode:        ParseMode(in.Mode),
		RequestText: Clip(in.RequestText, MaxRequestTextRunes),
		PurposeNote: Clip(in.PurposeNote, MaxPurposeNoteRunes),
		Language:    lang,
		Tone:        tone,
		To:          recipient.Split(in.To),
	}

	switch req.Mode {
	case ModeReply:
		if req.RequestText == "" {
			return Request{}, ErrRequestTextRequired
		}
	case ModeScratch:
		if req.RequestText == "" && req.PurposeNote == "" {
			return Request{}, ErrGoalRequired
		}
	}
	return req, nil
}

// Response は件名と本文の組。
type Response struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewResponse は各項目を前後の空白を除いてから上限で切り詰める。
func NewResponse(subject, body string) Response {
	return Response{
		Subject: Clip(subject, MaxSubjectRunes),
		Body:    Clip(body, MaxBodyRunes),
	}
}

// Clip は前後の空白を除き、max 文字を超える分を切り捨てる。
func Clip(s string, max int) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	n := 0
	for i := range t {
		if n == max {
			return t[:i]
		}
		n++
	}
	return t
}

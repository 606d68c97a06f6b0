package eml

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/message"
)

const (
	contentTypeText = "text/plain"
	charsetUTF8     = "utf-8"
	mimeVersion     = "1.0"

	headerTransferEncoding = "Content-Transfer-Encoding"
	transferEncoding8Bit   = "8bit"
	// RFC 5322 の 1 行の上限（CRLF を除く）。
	maxLineOctets = 998
)

/**
 * Encoder は下書きを 1 パートのプレーンテキストメール（.eml）として書き出す。
 * 送信はしないので From や Date は付けない。
 */
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

/**
 * To と Cc は値があるときだけヘッダーに入れる。
 * 非 ASCII の件名などのヘッダーは enmime がエンコードする。
 * 本文はテキストとしてそのまま読めるよう 8bit で書き、1 行が長すぎる場合だけ enmime の符号化に任せる。
 */
func (e *Encoder) Encode(w io.Writer, d *message.Draft) error {
	if d == nil {
		return fmt.Errorf("%w: draft is nil", message.ErrEncodeFailed)
	}

	part := enmime.NewPart(contentTypeText)
	part.Charset = charsetUTF8
	if d.To != "" {
		part.Header.Set("To", d.To)
	}
	if d.Cc != "" {
		part.Header.Set("Cc", d.Cc)
	}
	part.Header.Set("Subject", d.Subject)
	part.Header.Set("MIME-Version", mimeVersion)

	lines := crlfLines(d.Body)
	if !fitsLineLimit(lines) {
		part.Content = []byte(d.Body)
		if err := part.Encode(w); err != nil {
			return fmt.Errorf("%w: %v", message.ErrEncodeFailed, err)
		}
		return nil
	}

	// 本文を持たないパートはヘッダーだけを書き出す。
	bw := bufio.NewWriter(w)
	if err := part.Encode(bw); err != nil {
		return fmt.Errorf("%w: %v", message.ErrEncodeFailed, err)
	}
	bw.WriteString(headerTransferEncoding + ": " + transferEncoding8Bit + "\r\n\r\n")
	bw.WriteString(strings.Join(lines, "\r\n"))
	bw.WriteString("\r\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", message.ErrEncodeFailed, err)
	}
	return nil
}

// crlfLines は改行コードの揺れをそろえて行に分ける。
func crlfLines(body string) []string {
	return strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
}

func fitsLineLimit(lines []string) bool {
	for _, l := range lines {
		if len(l) > maxLineOctets {
			return false
		}
	}
	return true
}

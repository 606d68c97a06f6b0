package export

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/message"
)

// ダウンロード時のファイル名と MIME タイプ。
const (
	FileName    = "draft.eml"
	ContentType = "message/rfc822"
)

var (
	ErrNilInput        = errors.New("export: input is nil")
	ErrSubjectRequired = errors.New("export: subject is required")
	ErrBodyRequired    = errors.New("export: body is required")
)

// 書き出しの入力値
type Input struct {
	To      string
	Cc      string
	Subject string
	Body    string
}

// 書き出し結果
type Output struct {
	FileName    string
	ContentType string
	Data        []byte
}

/**
 * 下書きを .eml ファイルに書き出すユースケース
 * encoder: メールファイルの書き出し
 */
type Usecase struct {
	encoder message.Encoder
}

func NewUsecase(encoder message.Encoder) *Usecase {
	return &Usecase{encoder: encoder}
}

/**
 * 各項目の前後の空白を除き、件名と本文が空でなければ書き出す。
 */
func (u *Usecase) Execute(ctx context.Context, in *Input) (*Output, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	d := &message.Draft{
		To:      strings.TrimSpace(in.To),
		Cc:      strings.TrimSpace(in.Cc),
		Subject: strings.TrimSpace(in.Subject),
		Body:    strings.TrimSpace(in.Body),
	}
	if d.Subject == "" {
		return nil, ErrSubjectRequired
	}
	if d.Body == "" {
		return nil, ErrBodyRequired
	}

	var buf bytes.Buffer
	if err := u.encoder.Encode(&buf, d); err != nil {
		return nil, err
	}

	logger.Logger.Info("下書きを書き出しました",
		zap.Bool("has_to", d.To != ""),
		zap.Bool("has_cc", d.Cc != ""),
		zap.Int("size", buf.Len()))

	return &Output{
		FileName:    FileName,
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}

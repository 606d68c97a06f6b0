package message

import (
	"errors"
	"io"
)

var ErrEncodeFailed = errors.New("message: メールファイルの書き出しに失敗しました")

/**
 * 書き出す下書き
 * @param To 宛先（任意）
 * @param Cc 写し（任意）
 * @param Subject 件名
 * @param Body プレーンテキストの本文
 */
type Draft struct {
	To      string
	Cc      string
	Subject string
	Body    string
}

/**
 * 下書きをメールクライアントで開けるファイル形式に書き出す契約
 */
type Encoder interface {
	Encode(w io.Writer, d *Draft) error
}

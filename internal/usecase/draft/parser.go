package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
)

// ErrMalformedOutput は生成結果から件名と本文を取り出せなかったことを表す。
var ErrMalformedOutput = errors.New("draft: model did not return valid JSON")

// 最初の { から最後の } までを貪欲に拾う。
var braceBlock = regexp.MustCompile(`(?s)\{.*\}`)

/**
 * ParseOutput は生成サービスの生テキストから件名と本文を取り出す。
 * まずそのまま JSON として読み、だめなら前後の余計な文章を除いた {...} 部分を読む。
 * どちらの経路でも各項目は前後の空白を除き上限で切り詰める。
 */
func ParseOutput(raw string) (domain.Response, error) {
	text := strings.TrimSpace(raw)

	if obj, err := decodeObject(text); err == nil {
		return toResponse(obj), nil
	}

	block := braceBlock.FindString(text)
	if block == "" {
		return domain.Response{}, ErrMalformedOutput
	}
	obj, err := decodeObject(block)
	if err != nil {
		return domain.Response{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return toResponse(obj), nil
}

func decodeObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("json value is not an object")
	}
	return obj, nil
}

func toResponse(obj map[string]any) domain.Response {
	return domain.NewResponse(stringField(obj, "subject"), stringField(obj, "body"))
}

// stringField は文字列以外の値も文字列表現に直して返す。欠けていれば空文字。
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

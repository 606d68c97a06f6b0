package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/port/llm"
	draftusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/draft"
	exportusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/export"
)

// エラー応答の code。クライアントはこの値で分岐する。
const (
	CodeInvalidRequest         = "invalid_request"
	CodeRequestTextRequired    = "request_text_required"
	CodeGoalRequired           = "goal_required"
	CodeUnsupportedLanguage    = "unsupported_language"
	CodeUnsupportedTone        = "unsupported_tone"
	CodeSubjectBodyRequired    = "subject_and_body_required"
	CodeGeneratorNotConfigured = "generator_not_configured"
	CodeGeneratorUnavailable   = "generator_unavailable"
	CodeMalformedOutput        = "malformed_output"
	CodeFormatMismatch         = "format_mismatch"
	CodeInternal               = "internal_error"
)

const (
	messageInvalidRequest = "Invalid request body."
	messageInternalError  = "Server error"
	detailRetry           = "Please try again. (If this repeats, we can switch to a more strict model setting.)"
)

// errorResponse はすべての失敗応答の形。
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// errorMapping はエラーの種類ごとの HTTP ステータスと応答内容。
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
	detail  string
}

/**
 * 上から順に errors.Is で照合する。
 * 入力の不備は 4xx、設定や生成の失敗は 5xx に写す。
 */
var errorMappings = []errorMapping{
	{target: domain.ErrRequestTextRequired, status: http.StatusBadRequest, code: CodeRequestTextRequired,
		message: "requestText is required in Reply mode."},
	{target: domain.ErrGoalRequired, status: http.StatusBadRequest, code: CodeGoalRequired,
		message: "purposeNote is required in From-scratch mode (when Step 1 is empty)."},
	{target: domain.ErrUnsupportedLanguage, status: http.StatusBadRequest, code: CodeUnsupportedLanguage,
		message: "language must be one of Japanese, English or Bilingual."},
	{target: domain.ErrUnsupportedTone, status: http.StatusBadRequest, code: CodeUnsupportedTone,
		message: "tone must be one of Polite, Neutral or Administrative."},
	{target: draftusecase.ErrNilInput, status: http.StatusBadRequest, code: CodeInvalidRequest,
		message: messageInvalidRequest},
	{target: exportusecase.ErrSubjectRequired, status: http.StatusBadRequest, code: CodeSubjectBodyRequired,
		message: "Subject and body are required."},
	{target: exportusecase.ErrBodyRequired, status: http.StatusBadRequest, code: CodeSubjectBodyRequired,
		message: "Subject and body are required."},
	{target: exportusecase.ErrNilInput, status: http.StatusBadRequest, code: CodeInvalidRequest,
		message: messageInvalidRequest},
	{target: llm.ErrGeneratorNotConfigured, status: http.StatusInternalServerError, code: CodeGeneratorNotConfigured,
		message: "Missing API key for the generation service in environment."},
	{target: draftusecase.ErrFormatMismatch, status: http.StatusInternalServerError, code: CodeFormatMismatch,
		message: "Model output did not match requested language/format.", detail: detailRetry},
	{target: draftusecase.ErrMalformedOutput, status: http.StatusInternalServerError, code: CodeMalformedOutput,
		message: messageInternalError, detail: "Model did not return valid JSON."},
	{target: llm.ErrGeneratorUnavailable, status: http.StatusBadGateway, code: CodeGeneratorUnavailable,
		message: "The generation service is unavailable.", detail: detailRetry},
	{target: llm.ErrEmptyOutput, status: http.StatusBadGateway, code: CodeGeneratorUnavailable,
		message: "The generation service returned no output.", detail: detailRetry},
}

/**
 * writeError はユースケースからのエラーを HTTP ステータスと応答へ写し替える。
 * 対応表にないものは 500 とし、詳細はログにだけ残す。
 */
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				logger.Logger.Error("リクエストの処理に失敗しました",
					zap.String("path", c.FullPath()),
					zap.String("request_id", RequestIDFrom(c)),
					zap.String("code", m.code),
					zap.Error(err))
			}
			c.JSON(m.status, errorResponse{Error: m.message, Code: m.code, Detail: m.detail})
			return
		}
	}

	logger.Logger.Error("想定外のエラーが発生しました",
		zap.String("path", c.FullPath()),
		zap.String("request_id", RequestIDFrom(c)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{Error: messageInternalError, Code: CodeInternal})
}

func writeInvalidRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, errorResponse{Error: messageInvalidRequest, Code: CodeInvalidRequest})
}

package handler

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	draftusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/draft"
)

// 生成の診断情報を返すヘッダー。本文の JSON は {subject, body} のまま保つ。
// 非 ASCII を含む値は RFC 2047 の Q エンコードで返す。
const (
	HeaderDraftAttempts  = "X-Draft-Attempts"
	HeaderDraftCutReason = "X-Draft-Cut-Reason"
)

// 下書き作成ユースケースの契約。
type DraftExecutor interface {
	Execute(ctx context.Context, in *domain.Input) (*draftusecase.Output, error)
}

type DraftHandler struct {
	usecase DraftExecutor
}

// DraftHandler を生成する。
func NewDraftHandler(usecase DraftExecutor) *DraftHandler {
	return &DraftHandler{usecase: usecase}
}

// POST /api/draft の入力。
type DraftRequest struct {
	Mode        string `json:"mode"`
	RequestText string `json:"requestText"`
	PurposeNote string `json:"purposeNote"`
	Language    string `json:"language"`
	Tone        string `json:"tone"`
	To          string `json:"to"`
}

// 作成結果を表す。
type DraftResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

/**
 * POST /api/draft のリクエストを読み取り、ユースケースへ委譲して結果を返す。
 * 入力の意味的な検証はユースケース側で行う。
 */
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req DraftRequest
	// JSON パースに失敗したら入力不備
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, err)
		return
	}

	out, err := h.usecase.Execute(c.Request.Context(), &domain.Input{
		Mode:        req.Mode,
		RequestText: req.RequestText,
		PurposeNote: req.PurposeNote,
		Language:    req.Language,
		Tone:        req.Tone,
		To:          req.To,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(HeaderDraftAttempts, strconv.Itoa(out.Attempts))
	if out.CutReason != "" {
		c.Header(HeaderDraftCutReason, mime.QEncoding.Encode("utf-8", out.CutReason))
	}
	c.JSON(http.StatusOK, DraftResponse{
		Subject: out.Response.Subject,
		Body:    out.Response.Body,
	})
}

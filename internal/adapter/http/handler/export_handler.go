package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	exportusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/export"
)

// 書き出しユースケースの契約。
type ExportExecutor interface {
	Execute(ctx context.Context, in *exportusecase.Input) (*exportusecase.Output, error)
}

type ExportHandler struct {
	usecase ExportExecutor
}

// ExportHandler を生成する。
func NewExportHandler(usecase ExportExecutor) *ExportHandler {
	return &ExportHandler{usecase: usecase}
}

// POST /api/export の入力。
type ExportRequest struct {
	To      string `json:"to"`
	Cc      string `json:"cc"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

/**
 * POST /api/export は下書きを .eml の添付ファイルとして返す。
 */
func (h *ExportHandler) ExportDraft(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidRequest(c, err)
		return
	}

	out, err := h.usecase.Execute(c.Request.Context(), &exportusecase.Input{
		To:      req.To,
		Cc:      req.Cc,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	contextKeyReqID = "request_id"
	maxRequestIDLen = 128
)

/**
 * RequestID は呼び出し元が付けた X-Request-ID を引き継ぎ、なければ新しく採番する。
 * 応答ヘッダーとログの両方に同じ値を載せる。
 */
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(contextKeyReqID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom はミドルウェアが設定したリクエスト ID を返す。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(contextKeyReqID)
}

// AccessLog ロギングミドルウェア
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Logger.Error("サーバーエラー", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Logger.Warn("クライアントエラー", fields...)
		default:
			logger.Logger.Info("リクエスト完了", fields...)
		}
	}
}

// Recovery は panic をログに残して 500 を返す。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Logger.Error("panic から復旧しました",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestIDFrom(c)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: messageInternalError, Code: CodeInternal})
	})
}

package handler

import "github.com/gin-gonic/gin"

// NewRouter は HTTP ハンドラーを紐づけた gin.Engine を返す。
func NewRouter(draftHandler *DraftHandler, exportHandler *ExportHandler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(), Recovery())

	router.GET("/healthz", HealthCheck)

	api := router.Group("/api")
	api.POST("/draft", draftHandler.CreateDraft)
	api.POST("/export", exportHandler.ExportDraft)

	return router
}

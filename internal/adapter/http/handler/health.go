package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck は死活監視用。依存先には問い合わせない。
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

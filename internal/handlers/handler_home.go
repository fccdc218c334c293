package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the public service routes.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/health", healthCheck)
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the service is up
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

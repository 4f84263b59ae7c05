package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness
type HealthHandler struct {
	started time.Time
	driver  string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(driver string) *HealthHandler {
	return &HealthHandler{started: time.Now(), driver: driver}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"store":  h.driver,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

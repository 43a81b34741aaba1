package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the local server
type HealthHandler struct {
	service string
	version string
	stage   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version, stage string) *HealthHandler {
	return &HealthHandler{service: service, version: version, stage: stage}
}

// Health reports the service status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.service,
		"version":   h.version,
		"stage":     h.stage,
		"timestamp": time.Now().UTC(),
	})
}

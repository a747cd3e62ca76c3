package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	transcription *app.TranscriptionStage
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(transcription *app.TranscriptionStage) *HealthHandler {
	return &HealthHandler{
		transcription: transcription,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	ModelTier string `json:"model_tier"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   "1.0.0",
		ModelTier: string(h.transcription.ModelTier()),
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.transcription.ModelTier() == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no speech model loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

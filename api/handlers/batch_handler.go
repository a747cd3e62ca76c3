package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/app"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/export"
	"go.uber.org/zap"
)

// BatchHandler handles batch-related HTTP requests
type BatchHandler struct {
	pipeline *app.Pipeline
	repo     domain.BatchRepository
	logger   *zap.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(pipeline *app.Pipeline, repo domain.BatchRepository, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		pipeline: pipeline,
		repo:     repo,
		logger:   logger,
	}
}

// CreateBatchRequest represents a request to process a batch of URLs.
// URLs may arrive as an explicit list, as freeform text to extract from,
// or both.
type CreateBatchRequest struct {
	URLs     []string `json:"urls,omitempty"`
	Text     string   `json:"text,omitempty"`
	Model    string   `json:"model,omitempty"`
	Language string   `json:"language,omitempty"`
}

// CreateBatch handles POST /api/v1/batches. The batch runs synchronously;
// the response carries the persisted batch summary.
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	urls := domain.CollectURLs(req.Text + "\n" + strings.Join(req.URLs, "\n"))
	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid TikTok URLs found"})
		return
	}

	tier := domain.ModelTier(req.Model)
	if tier == "" {
		tier = domain.TierBase
	}
	if !domain.ValidateTier(tier) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid model tier: %s", req.Model)})
		return
	}

	results, err := h.pipeline.RunBatch(c.Request.Context(), urls, tier, req.Language)
	if err != nil {
		h.logger.Error("Batch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	batch, err := domain.NewBatch(tier, req.Language, results)
	if err != nil {
		h.logger.Error("Failed to encode batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.Save(batch); err != nil {
		h.logger.Error("Failed to save batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// ListBatches handles GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	batches, err := h.repo.FindAll()
	if err != nil {
		h.logger.Error("Failed to list batches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, batches)
}

// GetBatch handles GET /api/v1/batches/:id, returning the batch summary
// plus its full result list.
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batch, results, ok := h.loadBatch(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":   batch,
		"results": results,
	})
}

// DeleteBatch handles DELETE /api/v1/batches/:id
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.repo.FindByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.logger.Error("Failed to delete batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ExportCSV handles GET /api/v1/batches/:id/export/csv
func (h *BatchHandler) ExportCSV(c *gin.Context) {
	_, results, ok := h.loadBatch(c)
	if !ok {
		return
	}

	data, err := export.ToCSV(results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", exportFilename("csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportJSON handles GET /api/v1/batches/:id/export/json
func (h *BatchHandler) ExportJSON(c *gin.Context) {
	_, results, ok := h.loadBatch(c)
	if !ok {
		return
	}

	data, err := export.ToJSON(results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", exportFilename("json"))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ExportSRT handles GET /api/v1/batches/:id/export/srt
func (h *BatchHandler) ExportSRT(c *gin.Context) {
	_, results, ok := h.loadBatch(c)
	if !ok {
		return
	}

	data, err := export.ToSRTArchive(results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", exportFilename("zip"))
	c.Data(http.StatusOK, "application/zip", data)
}

// loadBatch resolves the :id param into the batch and its decoded
// results, writing the error response itself on failure.
func (h *BatchHandler) loadBatch(c *gin.Context) (*domain.Batch, []*domain.ResultRecord, bool) {
	id := c.Param("id")

	batch, err := h.repo.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return nil, nil, false
	}

	results, err := batch.Results()
	if err != nil {
		h.logger.Error("Failed to decode batch results",
			zap.String("id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt batch results"})
		return nil, nil, false
	}

	return batch, results, true
}

func exportFilename(ext string) string {
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("attachment; filename=tiktok_transcriptions_%s.%s", stamp, ext)
}

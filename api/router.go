package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sulthonmb/TikTok-Video-Transcriber/api/handlers"
	"github.com/sulthonmb/TikTok-Video-Transcriber/api/middleware"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/app"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
)

// SetupRouter sets up the HTTP router over the pipeline and batch store.
func SetupRouter(
	pipeline *app.Pipeline,
	transcription *app.TranscriptionStage,
	repo domain.BatchRepository,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(transcription)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		batchHandler := handlers.NewBatchHandler(pipeline, repo, log)
		batches := v1.Group("/batches")
		{
			batches.POST("", batchHandler.CreateBatch)
			batches.GET("", batchHandler.ListBatches)
			batches.GET("/:id", batchHandler.GetBatch)
			batches.DELETE("/:id", batchHandler.DeleteBatch)
			batches.GET("/:id/export/csv", batchHandler.ExportCSV)
			batches.GET("/:id/export/json", batchHandler.ExportJSON)
			batches.GET("/:id/export/srt", batchHandler.ExportSRT)
		}
	}

	return router
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sulthonmb/TikTok-Video-Transcriber/api"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/app"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/infrastructure"
	"github.com/sulthonmb/TikTok-Video-Transcriber/pkg/logger"
)

var configPath = flag.String("config", "", "Path to configuration file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	fetcher := infrastructure.NewYTDLPFetcher(&config.Download, log)
	extractor := infrastructure.NewFFmpegAudioExtractor(config.Transcription.FFmpegBinary, log)
	engine := infrastructure.NewWhisperCppEngine(
		config.Transcription.WhisperBinary,
		config.Transcription.ModelsDir,
		log,
	)

	downloadStage := app.NewDownloadStage(fetcher, &config.Download, log)
	transcriptionStage, err := app.NewTranscriptionStage(extractor, engine, &config.Transcription, log)
	if err != nil {
		log.Fatal("Failed to initialize transcription stage", zap.Error(err))
	}

	pipeline := app.NewPipeline(downloadStage, transcriptionStage, log, nil)

	repo, err := infrastructure.NewSQLiteBatchRepository(config.Storage.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open batch repository", zap.Error(err))
	}

	router := api.SetupRouter(pipeline, transcriptionStage, repo, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

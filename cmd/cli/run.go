package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/app"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/export"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/infrastructure"
	"github.com/sulthonmb/TikTok-Video-Transcriber/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run [urls...]",
	Short: "Download and transcribe a batch of TikTok URLs",
	Long: `Processes a batch of TikTok URLs: downloads each video, transcribes
its audio, and writes CSV, JSON, and SRT-zip exports into the output
directory. URLs come from arguments, --file, or stdin.`,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().String("file", "", "Read URLs from a text file")
	runCmd.Flags().String("model", string(domain.TierBase), "Model tier (tiny, base, small, medium, large)")
	runCmd.Flags().String("language", "", "ISO-639-1 language hint, empty for auto-detect")
	runCmd.Flags().String("out", ".", "Directory to write export files into")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	model, _ := cmd.Flags().GetString("model")
	language, _ := cmd.Flags().GetString("language")
	outDir, _ := cmd.Flags().GetString("out")

	urls, err := gatherURLs(args, file)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no valid TikTok URLs found")
	}

	tier := domain.ModelTier(model)
	if !domain.ValidateTier(tier) {
		return fmt.Errorf("invalid model tier: %s", model)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return err
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

	config.Transcription.ModelTier = tier
	transcriptionStage, err := app.NewTranscriptionStage(extractor, engine, &config.Transcription, log)
	if err != nil {
		return err
	}

	progress := func(completed, total int) {
		fmt.Printf("\rProcessing %d/%d", completed, total)
		if completed == total {
			fmt.Println()
		}
	}

	pipeline := app.NewPipeline(downloadStage, transcriptionStage, log, progress)

	fmt.Printf("Processing %d URLs (model: %s)\n", len(urls), tier)
	results, err := pipeline.RunBatch(context.Background(), urls, tier, language)
	if err != nil {
		return err
	}

	summary, err := export.Summarize(results)
	if err != nil {
		return err
	}

	fmt.Printf("Videos: %d  Transcribed: %d  Success rate: %.1f%%  Total duration: %.1fs\n",
		summary.TotalVideos,
		summary.SuccessfulTranscriptions,
		summary.SuccessRate,
		summary.TotalDuration)

	for _, result := range results {
		if !result.Success {
			fmt.Printf("  FAILED (%s, %d attempts): %s\n", result.ErrorCategory, result.Attempts, result.URL)
		} else if !result.TranscriptionSuccess {
			fmt.Printf("  DOWNLOADED, NOT TRANSCRIBED: %s\n", result.URL)
		}
	}

	return writeExports(results, outDir, log)
}

// gatherURLs merges argument URLs with the contents of --file or stdin,
// then de-duplicates and validates.
func gatherURLs(args []string, file string) ([]string, error) {
	var text strings.Builder
	text.WriteString(strings.Join(args, "\n"))
	text.WriteString("\n")

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read URL file: %w", err)
		}
		text.Write(data)
		text.WriteString("\n")
	}

	if len(args) == 0 && file == "" {
		stat, err := os.Stdin.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			text.Write(data)
		}
	}

	return domain.CollectURLs(text.String()), nil
}

// writeExports writes the three export encodings next to each other.
func writeExports(results []*domain.ResultRecord, outDir string, log *zap.Logger) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")

	csvData, err := export.ToCSV(results)
	if err != nil {
		return err
	}
	csvPath := filepath.Join(outDir, fmt.Sprintf("tiktok_transcriptions_%s.csv", stamp))
	if err := os.WriteFile(csvPath, csvData, 0644); err != nil {
		return err
	}

	jsonData, err := export.ToJSON(results)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(outDir, fmt.Sprintf("tiktok_transcriptions_%s.json", stamp))
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", csvPath)
	fmt.Printf("Wrote %s\n", jsonPath)

	zipData, err := export.ToSRTArchive(results)
	if err != nil {
		return err
	}
	zipPath := filepath.Join(outDir, fmt.Sprintf("tiktok_subtitles_%s.zip", stamp))
	if err := os.WriteFile(zipPath, zipData, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", zipPath)

	log.Info("Exports written",
		zap.String("csv", csvPath),
		zap.String("json", jsonPath),
		zap.String("srt_zip", zipPath))

	return nil
}

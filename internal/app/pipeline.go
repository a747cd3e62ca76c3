package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// ProgressFunc receives batch progress after each processed item.
// Each URL contributes two steps, one per phase, so total is always
// 2 × the number of URLs.
type ProgressFunc func(completed, total int)

// Pipeline sequences the download stage over all URLs, then the
// transcription stage over all successful downloads, and merges the two
// into the final result list. One RunBatch call is one batch: the unit
// of progress reporting and cleanup.
type Pipeline struct {
	download      *DownloadStage
	transcription *TranscriptionStage
	logger        *zap.Logger
	progress      ProgressFunc
}

// NewPipeline creates a pipeline over the two stages. progress may be nil.
func NewPipeline(download *DownloadStage, transcription *TranscriptionStage, logger *zap.Logger, progress ProgressFunc) *Pipeline {
	if progress == nil {
		progress = func(completed, total int) {}
	}
	return &Pipeline{
		download:      download,
		transcription: transcription,
		logger:        logger,
		progress:      progress,
	}
}

// RunBatch processes a batch of URLs: downloads in input order, then
// transcribes the successful downloads with the given language hint.
//
// The returned results are grouped, not in input order: failed downloads
// first (carrying the fixed skipped-transcription placeholder), then
// attempted transcriptions, each group in its original relative order.
//
// Per-item failures are recorded as data and never abort the batch; an
// unexpected error (model tier rejected, context cancelled) is terminal
// and no partial results are returned. Both stages' cleanup runs
// unconditionally once all items are processed.
func (p *Pipeline) RunBatch(ctx context.Context, urls []string, tier domain.ModelTier, language string) ([]*domain.ResultRecord, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("batch contains no URLs")
	}

	if tier != p.transcription.ModelTier() {
		if err := p.transcription.SetModelTier(tier); err != nil {
			return nil, fmt.Errorf("batch aborted: %w", err)
		}
	}

	total := len(urls) * 2
	completed := 0

	p.logger.Info("Starting batch",
		zap.Int("urls", len(urls)),
		zap.String("tier", string(tier)),
		zap.String("language", language))

	// Phase A: download everything, in input order.
	downloads := make([]*domain.DownloadRecord, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch aborted: %w", err)
		}
		downloads = append(downloads, p.download.DownloadOne(ctx, strings.TrimSpace(url)))
		completed++
		p.progress(completed, total)
	}

	// Phase B: partition, then transcribe the successes in relative order.
	var failed, succeeded []*domain.DownloadRecord
	for _, record := range downloads {
		if record.Success {
			succeeded = append(succeeded, record)
		} else {
			failed = append(failed, record)
		}
	}

	p.logger.Info("Download phase complete",
		zap.Int("succeeded", len(succeeded)),
		zap.Int("failed", len(failed)))

	results := make([]*domain.ResultRecord, 0, len(downloads))
	for _, record := range failed {
		results = append(results, domain.NewSkippedResult(record))
	}

	for _, record := range succeeded {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch aborted: %w", err)
		}

		transcription, err := p.transcription.TranscribeOne(ctx, record.FilePath, language)
		if err != nil {
			p.logger.Warn("Transcription failed for download",
				zap.String("video", record.FilePath),
				zap.Error(err))
			results = append(results, domain.NewFailedTranscriptionResult(record))
		} else {
			results = append(results, domain.NewTranscribedResult(record, transcription))
		}
		completed++
		p.progress(completed, total)
	}

	// Phase C: cleanup both stages' directories unconditionally. Cleanup
	// errors are logged, never surfaced, so they cannot mask the batch
	// outcome.
	if err := p.download.Cleanup(); err != nil {
		p.logger.Warn("Download cleanup failed", zap.Error(err))
	}
	if err := p.transcription.CleanupTemp(); err != nil {
		p.logger.Warn("Temp cleanup failed", zap.Error(err))
	}

	p.progress(total, total)
	p.logger.Info("Batch complete", zap.Int("results", len(results)))

	return results, nil
}

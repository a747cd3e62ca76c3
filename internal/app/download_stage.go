package app

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// DownloadStage retrieves remote videos through the extraction backend,
// with bounded retry and error classification. The stage owns its output
// directory; Cleanup removes everything directly under it.
type DownloadStage struct {
	fetcher    domain.VideoFetcher
	outputDir  string
	maxRetries int
	logger     *zap.Logger

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// NewDownloadStage creates a download stage over the given fetcher.
func NewDownloadStage(fetcher domain.VideoFetcher, config *domain.DownloadConfig, logger *zap.Logger) *DownloadStage {
	maxRetries := config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &DownloadStage{
		fetcher:    fetcher,
		outputDir:  config.OutputDir,
		maxRetries: maxRetries,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// DownloadOne attempts to fetch a single URL, retrying up to the
// configured maximum. Before each retry the stage sleeps a jittered
// backoff, uniform in [1,3) seconds scaled by the attempt index.
// Permanent errors (private, unavailable, deleted) stop the loop early;
// the returned record carries the attempt count actually reached.
func (s *DownloadStage) DownloadOne(ctx context.Context, url string) *domain.DownloadRecord {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration((rand.Float64()*2+1)*float64(attempt)*1000) * time.Millisecond
			s.logger.Info("Retrying download",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", s.maxRetries),
				zap.Duration("delay", delay))
			s.sleep(delay)
		}
		attempts = attempt + 1

		result, err := s.fetcher.Fetch(ctx, url)
		if err == nil {
			record := buildDownloadRecord(url, result)
			record.Attempts = attempts
			s.logger.Info("Download completed",
				zap.String("url", url),
				zap.String("title", record.Title),
				zap.Int("attempts", attempts))
			return record
		}

		lastErr = err
		category := domain.ClassifyDownloadError(err.Error())
		s.logger.Warn("Download attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempts),
			zap.String("category", string(category)),
			zap.Error(err))

		if domain.IsPermanentDownloadError(err.Error()) {
			s.logger.Error("Permanent download error, not retrying",
				zap.String("url", url),
				zap.String("category", string(category)))
			break
		}
	}

	s.logger.Error("Download failed",
		zap.String("url", url),
		zap.Int("attempts", attempts),
		zap.Error(lastErr))

	return &domain.DownloadRecord{
		URL:           url,
		Success:       false,
		Error:         lastErr.Error(),
		ErrorCategory: domain.ClassifyDownloadError(lastErr.Error()),
		Attempts:      attempts,
	}
}

// DownloadMany fetches each URL in input order, one at a time. Failures
// do not stop the batch; incidental whitespace is trimmed from each URL.
func (s *DownloadStage) DownloadMany(ctx context.Context, urls []string) []*domain.DownloadRecord {
	records := make([]*domain.DownloadRecord, 0, len(urls))
	for i, url := range urls {
		s.logger.Info("Downloading video",
			zap.Int("index", i+1),
			zap.Int("total", len(urls)),
			zap.String("url", url))
		records = append(records, s.DownloadOne(ctx, strings.TrimSpace(url)))
	}
	return records
}

// ProbeOne extracts metadata for a URL without downloading the video.
// Probing is cheaper than a full fetch, so it gets a smaller retry budget
// and a shorter backoff, but the same permanent-error short circuit.
func (s *DownloadStage) ProbeOne(ctx context.Context, url string) (*domain.DownloadRecord, error) {
	const probeRetries = 2

	var lastErr error
	for attempt := 0; attempt < probeRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration((rand.Float64()+0.5)*float64(attempt)*1000) * time.Millisecond
			s.sleep(delay)
		}

		result, err := s.fetcher.Probe(ctx, url)
		if err == nil {
			record := buildDownloadRecord(url, result)
			record.Attempts = attempt + 1
			return record, nil
		}

		lastErr = err
		if domain.IsPermanentDownloadError(err.Error()) {
			break
		}
		s.logger.Warn("Probe attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return nil, lastErr
}

// Cleanup deletes all regular files directly under the output directory.
// Subdirectories are left alone. Running it against an empty or missing
// directory is not an error.
func (s *DownloadStage) Cleanup() error {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.outputDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove download artifact",
				zap.String("path", path),
				zap.Error(err))
		}
	}

	s.logger.Info("Cleaned up download directory", zap.String("dir", s.outputDir))
	return nil
}

// buildDownloadRecord maps a fetch result onto a successful record,
// normalizing the upload date.
func buildDownloadRecord(url string, result *domain.FetchResult) *domain.DownloadRecord {
	formatted, iso := domain.NormalizeUploadDate(result.UploadDate)

	webpageURL := result.WebpageURL
	if webpageURL == "" {
		webpageURL = url
	}

	return &domain.DownloadRecord{
		URL:                 url,
		Success:             true,
		FilePath:            result.FilePath,
		Title:               result.Title,
		Duration:            result.Duration,
		Uploader:            result.Uploader,
		UploaderID:          result.UploaderID,
		UploadDate:          result.UploadDate,
		UploadDateFormatted: formatted,
		UploadDateISO:       iso,
		ViewCount:           result.ViewCount,
		LikeCount:           result.LikeCount,
		CommentCount:        result.CommentCount,
		Description:         result.Description,
		Thumbnail:           result.Thumbnail,
		WebpageURL:          webpageURL,
	}
}

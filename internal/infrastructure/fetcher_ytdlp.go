package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// YTDLPFetcher implements domain.VideoFetcher by driving yt-dlp as a
// subprocess. Videos and their .info.json sidecars land in the configured
// output directory; metadata comes from the info JSON yt-dlp prints to
// stdout with --print-json.
type YTDLPFetcher struct {
	config    *domain.DownloadConfig
	outputDir string
	logger    *zap.Logger
}

// NewYTDLPFetcher creates a new yt-dlp backed fetcher.
func NewYTDLPFetcher(config *domain.DownloadConfig, logger *zap.Logger) *YTDLPFetcher {
	return &YTDLPFetcher{
		config:    config,
		outputDir: config.OutputDir,
		logger:    logger,
	}
}

// ytdlpInfo mirrors the subset of yt-dlp's info JSON the pipeline uses.
type ytdlpInfo struct {
	Filename     string  `json:"_filename"`
	Title        string  `json:"title"`
	Duration     float64 `json:"duration"`
	Uploader     string  `json:"uploader"`
	UploaderID   string  `json:"uploader_id"`
	UploadDate   string  `json:"upload_date"`
	ViewCount    int64   `json:"view_count"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	Description  string  `json:"description"`
	Thumbnail    string  `json:"thumbnail"`
	WebpageURL   string  `json:"webpage_url"`
}

// Fetch downloads the video at url and returns its metadata.
func (f *YTDLPFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	args := f.baseArgs()
	args = append(args,
		"--print-json",
		"--write-info-json",
		"-f", "best[ext=mp4]/best",
		"-o", "%(id)s.%(ext)s",
		"-P", f.outputDir,
		url,
	)

	info, err := f.run(ctx, args)
	if err != nil {
		return nil, err
	}

	if info.Filename == "" {
		return nil, fmt.Errorf("yt-dlp reported no output file for %s", url)
	}
	if _, err := os.Stat(info.Filename); err != nil {
		return nil, fmt.Errorf("downloaded file missing: %w", err)
	}

	return fetchResultFromInfo(info), nil
}

// Probe extracts metadata without downloading the video.
func (f *YTDLPFetcher) Probe(ctx context.Context, url string) (*domain.FetchResult, error) {
	args := f.baseArgs()
	args = append(args, "--dump-json", "--skip-download", url)

	info, err := f.run(ctx, args)
	if err != nil {
		return nil, err
	}
	return fetchResultFromInfo(info), nil
}

func (f *YTDLPFetcher) baseArgs() []string {
	args := []string{
		"--no-warnings",
		"--no-playlist",
		"--restrict-filenames",
	}
	if f.config.CookieFile != "" && fileExists(f.config.CookieFile) {
		args = append(args, "--cookies", f.config.CookieFile)
	}
	return args
}

// run executes yt-dlp and parses the info JSON from its stdout. Stderr is
// folded into the returned error so the backend's message text survives
// for classification.
func (f *YTDLPFetcher) run(ctx context.Context, args []string) (*ytdlpInfo, error) {
	binary := f.config.YTDLPBinary
	if binary == "" {
		binary = "yt-dlp"
	}

	f.logger.Debug("Running yt-dlp", zap.Strings("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = err.Error()
		}
		return nil, fmt.Errorf("yt-dlp failed: %s", message)
	}

	// With --no-playlist there is exactly one JSON line; take the first
	// non-empty one to be safe against progress noise.
	var line string
	for _, candidate := range strings.Split(stdout.String(), "\n") {
		candidate = strings.TrimSpace(candidate)
		if strings.HasPrefix(candidate, "{") {
			line = candidate
			break
		}
	}
	if line == "" {
		return nil, fmt.Errorf("yt-dlp produced no info JSON")
	}

	var info ytdlpInfo
	if err := json.Unmarshal([]byte(line), &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp info JSON: %w", err)
	}
	return &info, nil
}

func fetchResultFromInfo(info *ytdlpInfo) *domain.FetchResult {
	return &domain.FetchResult{
		FilePath:     info.Filename,
		Title:        info.Title,
		Duration:     info.Duration,
		Uploader:     info.Uploader,
		UploaderID:   info.UploaderID,
		UploadDate:   info.UploadDate,
		ViewCount:    info.ViewCount,
		LikeCount:    info.LikeCount,
		CommentCount: info.CommentCount,
		Description:  info.Description,
		Thumbnail:    info.Thumbnail,
		WebpageURL:   info.WebpageURL,
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

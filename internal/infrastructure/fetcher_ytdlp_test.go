package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

func TestBaseArgs(t *testing.T) {
	fetcher := NewYTDLPFetcher(&domain.DownloadConfig{
		OutputDir: t.TempDir(),
	}, zap.NewNop())

	args := fetcher.baseArgs()

	assert.Contains(t, args, "--no-warnings")
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--restrict-filenames")
	assert.NotContains(t, args, "--cookies")
}

func TestBaseArgs_WithCookieFile(t *testing.T) {
	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookieFile, []byte(""), 0644))

	fetcher := NewYTDLPFetcher(&domain.DownloadConfig{
		OutputDir:  t.TempDir(),
		CookieFile: cookieFile,
	}, zap.NewNop())

	args := fetcher.baseArgs()

	assert.Contains(t, args, "--cookies")
	assert.Contains(t, args, cookieFile)
}

func TestBaseArgs_MissingCookieFileIgnored(t *testing.T) {
	fetcher := NewYTDLPFetcher(&domain.DownloadConfig{
		OutputDir:  t.TempDir(),
		CookieFile: "/nonexistent/cookies.txt",
	}, zap.NewNop())

	assert.NotContains(t, fetcher.baseArgs(), "--cookies")
}

func TestFetchResultFromInfo(t *testing.T) {
	info := &ytdlpInfo{
		Filename:     "/downloads/7234567890.mp4",
		Title:        "a video",
		Duration:     21.5,
		Uploader:     "someone",
		UploaderID:   "someone123",
		UploadDate:   "20240115",
		ViewCount:    1000,
		LikeCount:    50,
		CommentCount: 7,
		Description:  "caption text",
		Thumbnail:    "https://example.com/thumb.jpg",
		WebpageURL:   "https://www.tiktok.com/@someone/video/7234567890",
	}

	result := fetchResultFromInfo(info)

	assert.Equal(t, info.Filename, result.FilePath)
	assert.Equal(t, info.Title, result.Title)
	assert.Equal(t, info.Duration, result.Duration)
	assert.Equal(t, info.UploadDate, result.UploadDate)
	assert.Equal(t, info.ViewCount, result.ViewCount)
	assert.Equal(t, info.WebpageURL, result.WebpageURL)
}

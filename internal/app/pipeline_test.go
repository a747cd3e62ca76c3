package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// urlFetcher scripts one response per URL and materializes a video file
// for successful fetches so the transcription stage can stat it.
type urlFetcher struct {
	t        *testing.T
	videoDir string
	failures map[string]error
	count    int
}

func newURLFetcher(t *testing.T, failures map[string]error) *urlFetcher {
	return &urlFetcher{
		t:        t,
		videoDir: t.TempDir(),
		failures: failures,
	}
}

func (f *urlFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	if err, ok := f.failures[url]; ok {
		return nil, err
	}

	f.count++
	path := filepath.Join(f.videoDir, fmt.Sprintf("video%d.mp4", f.count))
	require.NoError(f.t, os.WriteFile(path, []byte("video"), 0644))

	return &domain.FetchResult{
		FilePath:   path,
		Title:      fmt.Sprintf("video %d", f.count),
		Duration:   20.0,
		Uploader:   "someone",
		UploadDate: "20240101",
		WebpageURL: url,
	}, nil
}

func (f *urlFetcher) Probe(ctx context.Context, url string) (*domain.FetchResult, error) {
	return f.Fetch(ctx, url)
}

func newTestPipeline(t *testing.T, fetcher domain.VideoFetcher, engine domain.SpeechEngine, progress ProgressFunc) *Pipeline {
	t.Helper()

	download := NewDownloadStage(fetcher, &domain.DownloadConfig{
		OutputDir:  t.TempDir(),
		MaxRetries: 3,
	}, zap.NewNop())
	download.sleep = func(time.Duration) {}

	transcription, err := NewTranscriptionStage(&fakeExtractor{}, engine, &domain.TranscriptionConfig{
		TempDir:   t.TempDir(),
		ModelTier: domain.TierBase,
	}, zap.NewNop())
	require.NoError(t, err)

	return NewPipeline(download, transcription, zap.NewNop(), progress)
}

func TestRunBatch_AllSucceed(t *testing.T) {
	fetcher := newURLFetcher(t, nil)
	engine := &fakeEngine{result: engineResult()}
	pipeline := newTestPipeline(t, fetcher, engine, nil)

	urls := []string{"https://vm.tiktok.com/a", "https://vm.tiktok.com/b"}
	results, err := pipeline.RunBatch(context.Background(), urls, domain.TierBase, "")
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, result := range results {
		assert.True(t, result.Success)
		assert.True(t, result.TranscriptionSuccess)
		assert.NotEmpty(t, result.Text)
	}
}

func TestRunBatch_PartialFailure(t *testing.T) {
	fetcher := newURLFetcher(t, map[string]error{
		"https://vm.tiktok.com/bad": errors.New("ERROR: Video unavailable"),
	})
	engine := &fakeEngine{result: engineResult()}
	pipeline := newTestPipeline(t, fetcher, engine, nil)

	urls := []string{"https://vm.tiktok.com/good", "https://vm.tiktok.com/bad"}
	results, err := pipeline.RunBatch(context.Background(), urls, domain.TierBase, "")
	require.NoError(t, err)

	require.Len(t, results, 2)

	// Failed downloads come first, then attempted transcriptions.
	failed, transcribed := results[0], results[1]
	assert.False(t, failed.Success)
	assert.False(t, failed.TranscriptionSuccess)
	assert.Equal(t, domain.ErrTranscriptionSkipped, failed.TranscriptionError)
	assert.Equal(t, domain.ErrorUnavailable, failed.ErrorCategory)
	assert.Equal(t, 1, failed.Attempts)

	assert.True(t, transcribed.Success)
	assert.True(t, transcribed.TranscriptionSuccess)
}

func TestRunBatch_TranscriptionFailure(t *testing.T) {
	fetcher := newURLFetcher(t, nil)
	engine := &fakeEngine{err: errors.New("inference blew up")}
	pipeline := newTestPipeline(t, fetcher, engine, nil)

	results, err := pipeline.RunBatch(context.Background(), []string{"https://vm.tiktok.com/a"}, domain.TierBase, "")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.False(t, results[0].TranscriptionSuccess)
	assert.Equal(t, domain.ErrTranscriptionGeneric, results[0].TranscriptionError)
}

func TestRunBatch_GroupedOrdering(t *testing.T) {
	fetcher := newURLFetcher(t, map[string]error{
		"https://vm.tiktok.com/f1": errors.New("private video"),
		"https://vm.tiktok.com/f2": errors.New("deleted"),
	})
	engine := &fakeEngine{result: engineResult()}
	pipeline := newTestPipeline(t, fetcher, engine, nil)

	urls := []string{
		"https://vm.tiktok.com/f1",
		"https://vm.tiktok.com/s1",
		"https://vm.tiktok.com/f2",
		"https://vm.tiktok.com/s2",
	}
	results, err := pipeline.RunBatch(context.Background(), urls, domain.TierBase, "")
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Failures keep their relative order, then successes keep theirs.
	assert.Equal(t, "https://vm.tiktok.com/f1", results[0].URL)
	assert.Equal(t, "https://vm.tiktok.com/f2", results[1].URL)
	assert.Equal(t, "https://vm.tiktok.com/s1", results[2].URL)
	assert.Equal(t, "https://vm.tiktok.com/s2", results[3].URL)
}

func TestRunBatch_ProgressAdvancesToCompletion(t *testing.T) {
	fetcher := newURLFetcher(t, nil)
	engine := &fakeEngine{result: engineResult()}

	var fractions []float64
	progress := func(completed, total int) {
		fractions = append(fractions, float64(completed)/float64(total))
	}
	pipeline := newTestPipeline(t, fetcher, engine, progress)

	urls := []string{"https://vm.tiktok.com/a", "https://vm.tiktok.com/b"}
	_, err := pipeline.RunBatch(context.Background(), urls, domain.TierBase, "")
	require.NoError(t, err)

	require.NotEmpty(t, fractions)
	// Two phases per URL: first report is 1/(2*2).
	assert.Equal(t, 0.25, fractions[0])
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
}

func TestRunBatch_EmptyBatch(t *testing.T) {
	pipeline := newTestPipeline(t, newURLFetcher(t, nil), &fakeEngine{result: engineResult()}, nil)

	_, err := pipeline.RunBatch(context.Background(), nil, domain.TierBase, "")
	assert.Error(t, err)
}

func TestRunBatch_InvalidTierIsTerminal(t *testing.T) {
	pipeline := newTestPipeline(t, newURLFetcher(t, nil), &fakeEngine{result: engineResult()}, nil)

	results, err := pipeline.RunBatch(context.Background(), []string{"https://vm.tiktok.com/a"}, "enormous", "")
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestRunBatch_CancelledContextIsTerminal(t *testing.T) {
	pipeline := newTestPipeline(t, newURLFetcher(t, nil), &fakeEngine{result: engineResult()}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := pipeline.RunBatch(ctx, []string{"https://vm.tiktok.com/a"}, domain.TierBase, "")
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestRunBatch_CleansBothDirectories(t *testing.T) {
	fetcher := newURLFetcher(t, nil)
	engine := &fakeEngine{result: engineResult()}

	downloadDir := t.TempDir()
	tempDir := t.TempDir()

	download := NewDownloadStage(fetcher, &domain.DownloadConfig{
		OutputDir:  downloadDir,
		MaxRetries: 3,
	}, zap.NewNop())
	download.sleep = func(time.Duration) {}

	transcription, err := NewTranscriptionStage(&fakeExtractor{}, engine, &domain.TranscriptionConfig{
		TempDir:   tempDir,
		ModelTier: domain.TierBase,
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(downloadDir, "leftover.mp4"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "leftover.wav"), []byte("x"), 0644))

	pipeline := NewPipeline(download, transcription, zap.NewNop(), nil)
	_, err = pipeline.RunBatch(context.Background(), []string{"https://vm.tiktok.com/a"}, domain.TierBase, "")
	require.NoError(t, err)

	downloadEntries, err := os.ReadDir(downloadDir)
	require.NoError(t, err)
	assert.Empty(t, downloadEntries)

	tempEntries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, tempEntries)
}

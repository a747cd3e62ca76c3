package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// Transcription failure categories. Per-item failures are captured as
// data on the result records; these sentinels only cross the stage
// boundary wrapped in the returned error.
var (
	ErrAudioExtraction = errors.New("audio extraction failed")
	ErrTranscription   = errors.New("transcription failed")
)

// TranscriptionStage extracts a normalized audio track from each video
// and runs speech recognition over it. The stage owns exactly one loaded
// model at a time; tier changes reload it synchronously and are
// serialized against in-flight transcription calls.
type TranscriptionStage struct {
	extractor domain.AudioExtractor
	engine    domain.SpeechEngine
	tempDir   string
	logger    *zap.Logger

	mu     sync.Mutex
	tier   domain.ModelTier
	loaded bool
}

// NewTranscriptionStage creates the stage and loads the configured model
// tier. A model load failure is fatal: the stage is unusable until a
// valid tier is loaded via SetModelTier.
func NewTranscriptionStage(
	extractor domain.AudioExtractor,
	engine domain.SpeechEngine,
	config *domain.TranscriptionConfig,
	logger *zap.Logger,
) (*TranscriptionStage, error) {
	if err := os.MkdirAll(config.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	stage := &TranscriptionStage{
		extractor: extractor,
		engine:    engine,
		tempDir:   config.TempDir,
		logger:    logger,
	}

	if err := stage.SetModelTier(config.ModelTier); err != nil {
		return nil, err
	}
	return stage, nil
}

// SetModelTier reloads the model at the given tier. The reload blocks
// until complete; subsequent transcription calls see the new model.
func (s *TranscriptionStage) SetModelTier(tier domain.ModelTier) error {
	if !domain.ValidateTier(tier) {
		return fmt.Errorf("invalid model tier: %s", tier)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Loading speech model", zap.String("tier", string(tier)))
	if err := s.engine.LoadModel(tier); err != nil {
		s.loaded = false
		return fmt.Errorf("failed to load model %q: %w", tier, err)
	}

	s.tier = tier
	s.loaded = true
	s.logger.Info("Model loaded", zap.String("tier", string(tier)))
	return nil
}

// ModelTier returns the currently loaded tier.
func (s *TranscriptionStage) ModelTier() domain.ModelTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

// TranscribeOne extracts the audio track of one video and transcribes it.
// The temporary WAV is named from the video's stem, overwritten if
// present, and deleted best-effort afterwards regardless of outcome.
// language is an optional ISO-639-1 hint; empty means auto-detect.
func (s *TranscriptionStage) TranscribeOne(ctx context.Context, videoPath, language string) (*domain.TranscriptionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, fmt.Errorf("%w: no model loaded", ErrTranscription)
	}

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(s.tempDir, stem+".wav")

	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("%w: video file not found: %s", ErrAudioExtraction, videoPath)
	}

	if err := s.extractor.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		s.logger.Error("Audio extraction failed",
			zap.String("video", videoPath),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAudioExtraction, err)
	}
	defer func() {
		// Deletion errors are swallowed; the directory-wide CleanupTemp
		// at batch end catches anything left behind.
		_ = os.Remove(audioPath)
	}()

	s.logger.Info("Transcribing audio",
		zap.String("audio", audioPath),
		zap.String("tier", string(s.tier)),
		zap.String("language", language))

	result, err := s.engine.Transcribe(ctx, audioPath, language)
	if err != nil {
		s.logger.Error("Transcription failed",
			zap.String("audio", audioPath),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	return domain.NewTranscriptionRecord(result.Text, result.Language, result.Segments), nil
}

// BulkTranscription tags one video's transcription outcome with its
// source path for bulk consumers.
type BulkTranscription struct {
	VideoPath string
	Record    *domain.TranscriptionRecord
	Err       error
}

// TranscribeMany transcribes videos in input order, one at a time.
func (s *TranscriptionStage) TranscribeMany(ctx context.Context, videoPaths []string, language string) []BulkTranscription {
	results := make([]BulkTranscription, 0, len(videoPaths))
	for i, videoPath := range videoPaths {
		s.logger.Info("Transcribing video",
			zap.Int("index", i+1),
			zap.Int("total", len(videoPaths)),
			zap.String("video", filepath.Base(videoPath)))

		record, err := s.TranscribeOne(ctx, videoPath, language)
		results = append(results, BulkTranscription{
			VideoPath: videoPath,
			Record:    record,
			Err:       err,
		})
	}
	return results
}

// CleanupTemp deletes all regular files directly under the temp
// directory. Safe to call repeatedly, including on an empty directory.
func (s *TranscriptionStage) CleanupTemp() error {
	entries, err := os.ReadDir(s.tempDir)
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
		path := filepath.Join(s.tempDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove temp file",
				zap.String("path", path),
				zap.Error(err))
		}
	}

	s.logger.Info("Cleaned up temp directory", zap.String("dir", s.tempDir))
	return nil
}

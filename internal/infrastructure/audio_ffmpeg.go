package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// FFmpegAudioExtractor implements domain.AudioExtractor by shelling out
// to ffmpeg. Output is single-channel 16-bit PCM at 16kHz, the format the
// speech engine expects.
type FFmpegAudioExtractor struct {
	binary string
	logger *zap.Logger
}

// NewFFmpegAudioExtractor creates a new ffmpeg-backed extractor.
func NewFFmpegAudioExtractor(binary string, logger *zap.Logger) *FFmpegAudioExtractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegAudioExtractor{binary: binary, logger: logger}
}

// ExtractAudio converts videoPath's audio track into a WAV at audioPath,
// overwriting any existing file.
func (e *FFmpegAudioExtractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	args := []string{
		"-y", // overwrite
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		audioPath,
	}

	e.logger.Debug("Running ffmpeg", zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = err.Error()
		}
		// ffmpeg logs everything to stderr; keep only the tail, the
		// actual error is at the end.
		if idx := strings.LastIndex(message, "\n"); idx >= 0 {
			message = strings.TrimSpace(message[idx+1:])
		}
		return fmt.Errorf("ffmpeg failed: %s", message)
	}

	return nil
}

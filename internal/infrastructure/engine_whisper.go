package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

// WhisperCppEngine implements domain.SpeechEngine over the whisper.cpp
// CLI. Each tier maps to a ggml model file under the models directory;
// LoadModel verifies the file exists so a bad tier fails fast instead of
// at the first transcription.
type WhisperCppEngine struct {
	binary    string
	modelsDir string
	logger    *zap.Logger

	mu        sync.Mutex
	modelPath string
}

// NewWhisperCppEngine creates a new whisper.cpp backed engine. No model
// is loaded yet; call LoadModel before Transcribe.
func NewWhisperCppEngine(binary, modelsDir string, logger *zap.Logger) *WhisperCppEngine {
	if binary == "" {
		binary = "whisper-cli"
	}
	return &WhisperCppEngine{
		binary:    binary,
		modelsDir: modelsDir,
		logger:    logger,
	}
}

// LoadModel points the engine at the ggml model for the given tier.
func (e *WhisperCppEngine) LoadModel(tier domain.ModelTier) error {
	modelPath := filepath.Join(e.modelsDir, fmt.Sprintf("ggml-%s.bin", tier))
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}

	e.mu.Lock()
	e.modelPath = modelPath
	e.mu.Unlock()

	return nil
}

// whisperOutput mirrors whisper.cpp's -oj JSON document.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp over the audio file and parses its JSON
// output. language is an optional ISO-639-1 hint; empty means auto-detect.
func (e *WhisperCppEngine) Transcribe(ctx context.Context, audioPath, language string) (*domain.EngineResult, error) {
	e.mu.Lock()
	modelPath := e.modelPath
	e.mu.Unlock()

	if modelPath == "" {
		return nil, fmt.Errorf("no model loaded")
	}

	outPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	jsonPath := outPrefix + ".json"

	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-oj",
		"-of", outPrefix,
		"--no-prints",
	}
	if language != "" {
		args = append(args, "-l", language)
	} else {
		args = append(args, "-l", "auto")
	}

	e.logger.Debug("Running whisper", zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = err.Error()
		}
		return nil, fmt.Errorf("whisper failed: %s", message)
	}
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}

	return parseWhisperOutput(data)
}

// parseWhisperOutput converts whisper.cpp's JSON document into an
// EngineResult, converting millisecond offsets to seconds.
func parseWhisperOutput(data []byte) (*domain.EngineResult, error) {
	var output whisperOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	segments := make([]domain.TranscriptSegment, 0, len(output.Transcription))
	var text strings.Builder
	for _, entry := range output.Transcription {
		segments = append(segments, domain.TranscriptSegment{
			Start: float64(entry.Offsets.From) / 1000.0,
			End:   float64(entry.Offsets.To) / 1000.0,
			Text:  entry.Text,
		})
		text.WriteString(entry.Text)
	}

	return &domain.EngineResult{
		Text:     text.String(),
		Language: output.Result.Language,
		Segments: segments,
	}, nil
}

package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"go.uber.org/zap"
)

const sampleWhisperJSON = `{
	"result": {"language": "en"},
	"transcription": [
		{"offsets": {"from": 0, "to": 2000}, "text": " Hello"},
		{"offsets": {"from": 2000, "to": 4500}, "text": " there."}
	]
}`

func TestParseWhisperOutput(t *testing.T) {
	result, err := parseWhisperOutput([]byte(sampleWhisperJSON))
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.Equal(t, " Hello there.", result.Text)

	require.Len(t, result.Segments, 2)
	assert.Equal(t, 0.0, result.Segments[0].Start)
	assert.Equal(t, 2.0, result.Segments[0].End)
	assert.Equal(t, 2.0, result.Segments[1].Start)
	assert.Equal(t, 4.5, result.Segments[1].End)
	assert.Equal(t, " there.", result.Segments[1].Text)
}

func TestParseWhisperOutput_Empty(t *testing.T) {
	result, err := parseWhisperOutput([]byte(`{"result": {"language": ""}, "transcription": []}`))
	require.NoError(t, err)

	assert.Empty(t, result.Text)
	assert.Empty(t, result.Segments)
}

func TestParseWhisperOutput_Malformed(t *testing.T) {
	_, err := parseWhisperOutput([]byte("{not json"))
	assert.Error(t, err)
}

func TestLoadModel(t *testing.T) {
	modelsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "ggml-tiny.bin"), []byte("ggml"), 0644))

	engine := NewWhisperCppEngine("", modelsDir, zap.NewNop())

	assert.NoError(t, engine.LoadModel(domain.TierTiny))
}

func TestLoadModel_MissingFile(t *testing.T) {
	engine := NewWhisperCppEngine("", t.TempDir(), zap.NewNop())

	err := engine.LoadModel(domain.TierLarge)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ggml-large.bin")
}

func TestTranscribe_NoModelLoaded(t *testing.T) {
	engine := NewWhisperCppEngine("", t.TempDir(), zap.NewNop())

	_, err := engine.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model loaded")
}

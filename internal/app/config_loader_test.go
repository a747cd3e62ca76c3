package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 3, config.Download.MaxRetries)
	assert.Equal(t, domain.TierBase, config.Transcription.ModelTier)
}

func TestLoadConfig_FromFile(t *testing.T) {
	config, err := LoadConfig(writeConfigFile(t, `
server:
  port: 9090
download:
  output_dir: /data/videos
  max_retries: 5
transcription:
  model_tier: small
  language: id
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/data/videos", config.Download.OutputDir)
	assert.Equal(t, 5, config.Download.MaxRetries)
	assert.Equal(t, domain.TierSmall, config.Transcription.ModelTier)
	assert.Equal(t, "id", config.Transcription.Language)
}

func TestLoadConfig_ExpandsEnvInPaths(t *testing.T) {
	t.Setenv("MEDIA_ROOT", "/srv/media")

	config, err := LoadConfig(writeConfigFile(t, `
download:
  output_dir: $MEDIA_ROOT/downloads
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/media/downloads", config.Download.OutputDir)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
server:
  port: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_InvalidTier(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
transcription:
  model_tier: enormous
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model tier")
}

func TestLoadConfig_InvalidRetries(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `
download:
  max_retries: 0
`))
	assert.Error(t, err)
}

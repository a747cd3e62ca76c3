package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Download      DownloadConfig      `mapstructure:"download"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-stage configuration
type DownloadConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	MaxRetries  int    `mapstructure:"max_retries"`
	YTDLPBinary string `mapstructure:"ytdlp_binary"`
	CookieFile  string `mapstructure:"cookie_file"`
}

// TranscriptionConfig contains transcription-stage configuration
type TranscriptionConfig struct {
	TempDir       string        `mapstructure:"temp_dir"`
	ModelsDir     string        `mapstructure:"models_dir"`
	ModelTier     ModelTier     `mapstructure:"model_tier"`
	Language      string        `mapstructure:"language"` // ISO-639-1, empty for auto-detect
	WhisperBinary string        `mapstructure:"whisper_binary"`
	FFmpegBinary  string        `mapstructure:"ffmpeg_binary"`
	Timeout       time.Duration `mapstructure:"timeout"` // per-inference guard, 0 disables
}

// StorageConfig contains batch-history persistence configuration
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			OutputDir:   "downloads",
			MaxRetries:  3,
			YTDLPBinary: "yt-dlp",
			CookieFile:  "",
		},
		Transcription: TranscriptionConfig{
			TempDir:       "$HOME/.tiktok-transcriber/tmp",
			ModelsDir:     "$HOME/.tiktok-transcriber/models",
			ModelTier:     TierBase,
			Language:      "",
			WhisperBinary: "whisper-cli",
			FFmpegBinary:  "ffmpeg",
			Timeout:       0,
		},
		Storage: StorageConfig{
			DatabasePath: "$HOME/.tiktok-transcriber/batches.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}

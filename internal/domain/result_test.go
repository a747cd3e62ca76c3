package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSkippedResult(t *testing.T) {
	download := &DownloadRecord{
		URL:           "https://vm.tiktok.com/abc",
		Success:       false,
		Error:         "Video unavailable",
		ErrorCategory: ErrorUnavailable,
		Attempts:      1,
	}

	result := NewSkippedResult(download)

	assert.False(t, result.Success)
	assert.False(t, result.TranscriptionSuccess)
	assert.Equal(t, ErrTranscriptionSkipped, result.TranscriptionError)
	assert.Equal(t, ErrorUnavailable, result.ErrorCategory)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.Segments)
}

func TestNewTranscribedResult(t *testing.T) {
	download := &DownloadRecord{
		URL:      "https://www.tiktok.com/@user/video/1",
		Success:  true,
		FilePath: "/tmp/1.mp4",
		Title:    "a video",
		Duration: 30.0,
	}
	transcription := &TranscriptionRecord{
		Text:     "hello",
		Language: "en",
		Segments: []TranscriptSegment{{Start: 0, End: 12.5, Text: "hello"}},
		Duration: 12.5,
	}

	result := NewTranscribedResult(download, transcription)

	assert.True(t, result.Success)
	assert.True(t, result.TranscriptionSuccess)
	assert.Empty(t, result.TranscriptionError)
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, "en", result.Language)
	assert.Len(t, result.Segments, 1)
	// The transcription's derived duration wins over the metadata one.
	assert.Equal(t, 12.5, result.Duration)
}

func TestNewTranscribedResult_NoSegmentsKeepsMetadataDuration(t *testing.T) {
	download := &DownloadRecord{Success: true, Duration: 30.0}
	transcription := &TranscriptionRecord{Text: "", Language: "en"}

	result := NewTranscribedResult(download, transcription)
	assert.Equal(t, 30.0, result.Duration)
}

func TestNewFailedTranscriptionResult(t *testing.T) {
	download := &DownloadRecord{
		URL:      "https://www.tiktok.com/@user/video/2",
		Success:  true,
		FilePath: "/tmp/2.mp4",
	}

	result := NewFailedTranscriptionResult(download)

	assert.True(t, result.Success)
	assert.False(t, result.TranscriptionSuccess)
	assert.Equal(t, ErrTranscriptionGeneric, result.TranscriptionError)
	assert.NotEqual(t, ErrTranscriptionSkipped, result.TranscriptionError)
}

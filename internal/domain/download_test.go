package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDownloadError(t *testing.T) {
	tests := []struct {
		message  string
		expected ErrorCategory
	}{
		{"ERROR: Unable to extract webpage video data", ErrorBlocked},
		{"ERROR: Video unavailable", ErrorUnavailable},
		{"ERROR: Private video. Sign in if you've been granted access", ErrorUnavailable},
		{"network is unreachable", ErrorNetwork},
		{"connection reset by peer", ErrorNetwork},
		{"HTTP Error 429: rate limit exceeded", ErrorRateLimited},
		{"too many requests, slow down", ErrorRateLimited},
		{"something completely different", ErrorUnknown},
		{"", ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDownloadError(tt.message))
		})
	}
}

func TestClassifyDownloadError_PriorityOrder(t *testing.T) {
	// A blocked-extraction message mentioning the network still classifies
	// as blocked: rules are checked in priority order.
	message := "unable to extract webpage video data due to network issue"
	assert.Equal(t, ErrorBlocked, ClassifyDownloadError(message))
}

func TestIsPermanentDownloadError(t *testing.T) {
	assert.True(t, IsPermanentDownloadError("Private video"))
	assert.True(t, IsPermanentDownloadError("ERROR: Video unavailable"))
	assert.True(t, IsPermanentDownloadError("this video has been deleted"))
	assert.False(t, IsPermanentDownloadError("network error"))
	assert.False(t, IsPermanentDownloadError("rate limit"))
	assert.False(t, IsPermanentDownloadError(""))
}

func TestNormalizeUploadDate(t *testing.T) {
	formatted, iso := NormalizeUploadDate("20240115")
	assert.Equal(t, "2024-01-15", formatted)
	assert.Equal(t, "2024-01-15T00:00:00", iso)
}

func TestNormalizeUploadDate_PassThrough(t *testing.T) {
	tests := []string{"", "Unknown", "2024", "January 15, 2024", "99999999"}

	for _, raw := range tests {
		formatted, iso := NormalizeUploadDate(raw)
		assert.Equal(t, raw, formatted)
		assert.Empty(t, iso)
	}
}

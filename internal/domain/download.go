package domain

import (
	"strings"
	"time"
)

// ErrorCategory classifies a download failure. Categories are derived by
// keyword matching on the backend's error message, so they are best-effort
// diagnostic metadata rather than a hard contract.
type ErrorCategory string

const (
	ErrorBlocked     ErrorCategory = "blocked"      // extraction blocked, possibly region-locked
	ErrorUnavailable ErrorCategory = "unavailable"  // private, deleted, or removed video
	ErrorNetwork     ErrorCategory = "network"      // connection-level failure
	ErrorRateLimited ErrorCategory = "rate-limited" // too many requests
	ErrorUnknown     ErrorCategory = "unknown"
)

// DownloadRecord is the outcome of attempting to fetch one URL.
// Success implies FilePath is set and the file existed at creation time;
// failure implies FilePath is empty and Error/ErrorCategory are set.
type DownloadRecord struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`

	FilePath            string  `json:"file_path,omitempty"`
	Title               string  `json:"title,omitempty"`
	Duration            float64 `json:"duration,omitempty"`
	Uploader            string  `json:"uploader,omitempty"`
	UploaderID          string  `json:"uploader_id,omitempty"`
	UploadDate          string  `json:"upload_date,omitempty"`
	UploadDateFormatted string  `json:"upload_date_formatted,omitempty"`
	UploadDateISO       string  `json:"upload_date_iso,omitempty"`
	ViewCount           int64   `json:"view_count,omitempty"`
	LikeCount           int64   `json:"like_count,omitempty"`
	CommentCount        int64   `json:"comment_count,omitempty"`
	Description         string  `json:"description,omitempty"`
	Thumbnail           string  `json:"thumbnail,omitempty"`
	WebpageURL          string  `json:"webpage_url,omitempty"`

	Error         string        `json:"error,omitempty"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`

	// Attempts is the number of attempts actually made, not the configured
	// maximum: a permanent error stops the retry loop early.
	Attempts int `json:"attempts"`
}

// classificationRules map message keywords to categories, checked in
// priority order. The first matching group wins.
var classificationRules = []struct {
	keywords []string
	category ErrorCategory
}{
	{[]string{"unable to extract webpage video data"}, ErrorBlocked},
	{[]string{"video unavailable"}, ErrorUnavailable},
	{[]string{"private video"}, ErrorUnavailable},
	{[]string{"network", "connection"}, ErrorNetwork},
	{[]string{"rate limit", "too many requests"}, ErrorRateLimited},
}

// permanentKeywords mark failures for which retrying is pointless.
var permanentKeywords = []string{"private video", "video unavailable", "deleted"}

// ClassifyDownloadError maps an error message to an ErrorCategory.
func ClassifyDownloadError(message string) ErrorCategory {
	lowered := strings.ToLower(message)
	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category
			}
		}
	}
	return ErrorUnknown
}

// IsPermanentDownloadError reports whether the error message indicates a
// permanent failure that should stop the retry loop immediately.
func IsPermanentDownloadError(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range permanentKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// NormalizeUploadDate reformats yt-dlp's YYYYMMDD upload date into a
// YYYY-MM-DD display form and an ISO-8601 timestamp. Anything that is not
// an 8-digit date passes through unchanged with an empty ISO form.
func NormalizeUploadDate(raw string) (formatted, iso string) {
	if len(raw) != 8 {
		return raw, ""
	}
	parsed, err := time.Parse("20060102", raw)
	if err != nil {
		return raw, ""
	}
	return parsed.Format("2006-01-02"), parsed.Format("2006-01-02T15:04:05")
}

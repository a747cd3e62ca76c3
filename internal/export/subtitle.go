package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
)

// BuildSRT renders one subtitle document: 1-based sequential indices,
// MM:SS --> MM:SS timestamp lines, trimmed segment text, and a blank
// separator line per block.
func BuildSRT(segments []domain.TranscriptSegment) string {
	var b strings.Builder
	for i, segment := range segments {
		start := domain.FormatTimestamp(segment.Start)
		end := domain.FormatTimestamp(segment.End)
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, start, end, strings.TrimSpace(segment.Text))
	}
	return b.String()
}

// SanitizeFilename strips a name down to alphanumerics, spaces, hyphens,
// underscores, and periods, dropping trailing spaces.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ToSRTArchive bundles one SRT file per transcribed result into a
// deflate-compressed zip. Results without an attempted transcription or
// with an empty segment list are silently skipped. Entry names combine a
// 1-based index with the sanitized title, truncated to 50 characters
// before sanitizing.
func ToSRTArchive(results []*domain.ResultRecord) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	index := 0
	for _, result := range results {
		if !result.TranscriptionSuccess || len(result.Segments) == 0 {
			continue
		}
		index++

		title := result.Title
		if title == "" {
			title = "unknown"
		}
		if runes := []rune(title); len(runes) > 50 {
			title = string(runes[:50])
		}

		name := SanitizeFilename(fmt.Sprintf("video_%d_%s.srt", index, title))
		entry, err := archive.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := entry.Write([]byte(BuildSRT(result.Segments))); err != nil {
			return nil, fmt.Errorf("failed to write archive entry: %w", err)
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package domain

import (
	"fmt"
	"strings"
)

// ModelTier is a named preset controlling the speed/accuracy tradeoff of
// the speech-recognition engine.
type ModelTier string

const (
	TierTiny   ModelTier = "tiny"
	TierBase   ModelTier = "base"
	TierSmall  ModelTier = "small"
	TierMedium ModelTier = "medium"
	TierLarge  ModelTier = "large"
)

// AvailableTiers lists the model tiers in increasing size/accuracy order.
func AvailableTiers() []ModelTier {
	return []ModelTier{TierTiny, TierBase, TierSmall, TierMedium, TierLarge}
}

// ValidateTier checks if a model tier is valid.
func ValidateTier(tier ModelTier) bool {
	for _, t := range AvailableTiers() {
		if tier == t {
			return true
		}
	}
	return false
}

// TranscriptSegment is a contiguous time-bounded span of recognized speech.
// Offsets are seconds; segments arrive from the engine ordered by start
// time and non-overlapping, and the pipeline does not re-sort them.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionRecord is the result of transcribing one local video file.
type TranscriptionRecord struct {
	Text     string              `json:"text"`
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
	Duration float64             `json:"duration"`
}

// NewTranscriptionRecord builds a record from the engine's raw output,
// trimming whitespace and deriving total duration from the last segment.
func NewTranscriptionRecord(text, language string, segments []TranscriptSegment) *TranscriptionRecord {
	trimmed := make([]TranscriptSegment, len(segments))
	for i, segment := range segments {
		trimmed[i] = TranscriptSegment{
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		}
	}

	duration := 0.0
	if len(trimmed) > 0 {
		duration = trimmed[len(trimmed)-1].End
	}

	if language == "" {
		language = "unknown"
	}

	return &TranscriptionRecord{
		Text:     strings.TrimSpace(text),
		Language: language,
		Segments: trimmed,
		Duration: duration,
	}
}

// FormatTimestamp renders seconds as MM:SS. Minutes are unbounded (there
// is no hours field), both fields are zero-padded to two digits, and
// fractional seconds are dropped.
func FormatTimestamp(seconds float64) string {
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

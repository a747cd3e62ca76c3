package domain

// Placeholder messages carried on results whose transcription was not
// produced. The download-failed placeholder is fixed: the presentation
// layer branches on it to distinguish "download failed, transcription
// skipped" from "download succeeded, transcription failed".
const (
	ErrTranscriptionSkipped = "Download failed - transcription not attempted"
	ErrTranscriptionGeneric = "Failed to transcribe"
)

// ResultRecord is the unit the rest of the system consumes: one
// DownloadRecord merged with its TranscriptionRecord, if one was
// attempted. Transcription is attempted iff the download succeeded.
// Records are immutable once produced by the pipeline.
type ResultRecord struct {
	DownloadRecord

	TranscriptionSuccess bool   `json:"transcription_success"`
	TranscriptionError   string `json:"transcription_error,omitempty"`

	Text     string              `json:"text,omitempty"`
	Language string              `json:"language,omitempty"`
	Segments []TranscriptSegment `json:"segments,omitempty"`
}

// NewSkippedResult builds the result for a failed download: transcription
// is never attempted and the fixed placeholder is always set.
func NewSkippedResult(download *DownloadRecord) *ResultRecord {
	return &ResultRecord{
		DownloadRecord:       *download,
		TranscriptionSuccess: false,
		TranscriptionError:   ErrTranscriptionSkipped,
	}
}

// NewTranscribedResult merges a successful download with its
// transcription. The transcription's derived duration replaces the
// metadata duration, matching what exports and summaries report.
func NewTranscribedResult(download *DownloadRecord, transcription *TranscriptionRecord) *ResultRecord {
	result := &ResultRecord{
		DownloadRecord:       *download,
		TranscriptionSuccess: true,
		Text:                 transcription.Text,
		Language:             transcription.Language,
		Segments:             transcription.Segments,
	}
	if transcription.Duration > 0 {
		result.Duration = transcription.Duration
	}
	return result
}

// NewFailedTranscriptionResult builds the result for a download that
// succeeded but whose transcription failed.
func NewFailedTranscriptionResult(download *DownloadRecord) *ResultRecord {
	return &ResultRecord{
		DownloadRecord:       *download,
		TranscriptionSuccess: false,
		TranscriptionError:   ErrTranscriptionGeneric,
	}
}

package domain

import "context"

// FetchResult is the raw outcome of one successful backend fetch: the
// local file plus the metadata fields the extractor exposes.
type FetchResult struct {
	FilePath     string
	Title        string
	Duration     float64
	Uploader     string
	UploaderID   string
	UploadDate   string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Description  string
	Thumbnail    string
	WebpageURL   string
}

// VideoFetcher retrieves a remote video and its metadata. Implementations
// wrap the external extraction backend; errors must carry the backend's
// message text so the caller can classify them.
type VideoFetcher interface {
	// Fetch downloads the video at url into the fetcher's output
	// directory and returns its metadata.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Probe extracts metadata without downloading the video.
	Probe(ctx context.Context, url string) (*FetchResult, error)
}

// AudioExtractor converts a video's audio track to single-channel 16-bit
// PCM at 16kHz, the input format the speech engine expects.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// EngineResult is the speech engine's raw output for one audio file.
type EngineResult struct {
	Text     string
	Language string
	Segments []TranscriptSegment
}

// SpeechEngine runs speech recognition against extracted audio.
// LoadModel swaps the active model synchronously; implementations must
// not let a transcription call observe a half-swapped model.
type SpeechEngine interface {
	LoadModel(tier ModelTier) error
	Transcribe(ctx context.Context, audioPath, language string) (*EngineResult, error)
}

// BatchRepository persists processed batches for later retrieval.
type BatchRepository interface {
	Save(batch *Batch) error
	FindByID(id string) (*Batch, error)
	FindAll() ([]*Batch, error)
	Delete(id string) error
	Count() (int64, error)
}

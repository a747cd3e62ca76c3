package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Batch is the persisted record of one pipeline run. Results are stored
// as a JSON blob: batches are written once and read whole, so there is
// nothing to gain from normalizing segments into rows.
type Batch struct {
	ID                       string    `json:"id" gorm:"primaryKey"`
	ModelTier                ModelTier `json:"model_tier" gorm:"not null"`
	Language                 string    `json:"language,omitempty"`
	TotalVideos              int       `json:"total_videos"`
	SuccessfulTranscriptions int       `json:"successful_transcriptions"`
	TotalDuration            float64   `json:"total_duration"`
	ResultsJSON              string    `json:"-" gorm:"type:text"`
	CreatedAt                time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewBatch creates a batch record from a finished pipeline run.
func NewBatch(tier ModelTier, language string, results []*ResultRecord) (*Batch, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	successful := 0
	totalDuration := 0.0
	for _, result := range results {
		if result.TranscriptionSuccess {
			successful++
		}
		totalDuration += result.Duration
	}

	return &Batch{
		ID:                       uuid.New().String(),
		ModelTier:                tier,
		Language:                 language,
		TotalVideos:              len(results),
		SuccessfulTranscriptions: successful,
		TotalDuration:            totalDuration,
		ResultsJSON:              string(data),
		CreatedAt:                time.Now(),
	}, nil
}

// Results decodes the stored result list.
func (b *Batch) Results() ([]*ResultRecord, error) {
	var results []*ResultRecord
	if err := json.Unmarshal([]byte(b.ResultsJSON), &results); err != nil {
		return nil, err
	}
	return results, nil
}

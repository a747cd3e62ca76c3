// Package export turns a batch's result list into summary statistics and
// the three export encodings: CSV rows, a structured JSON document, and a
// zip archive of SRT subtitle files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
)

// Summary holds the aggregate statistics for one batch.
type Summary struct {
	TotalVideos              int     `json:"total_videos"`
	SuccessfulTranscriptions int     `json:"successful_transcriptions"`
	SuccessRate              float64 `json:"success_rate"` // percent
	TotalDuration            float64 `json:"total_duration"`
}

// Summarize computes batch statistics. An empty batch has no defined
// success rate and is rejected.
func Summarize(results []*domain.ResultRecord) (*Summary, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty batch")
	}

	successful := 0
	totalDuration := 0.0
	for _, result := range results {
		if result.TranscriptionSuccess {
			successful++
		}
		totalDuration += result.Duration
	}

	return &Summary{
		TotalVideos:              len(results),
		SuccessfulTranscriptions: successful,
		SuccessRate:              float64(successful) / float64(len(results)) * 100,
		TotalDuration:            totalDuration,
	}, nil
}

// csvHeader is the fixed column set of the tabular export.
var csvHeader = []string{
	"URL", "Title", "Uploader", "Uploader_ID",
	"Created_Date", "Created_Date_ISO",
	"Duration", "Views", "Likes", "Comments",
	"Language", "Transcription", "Success",
}

// ToCSV renders one row per result with a header row. Missing fields
// render as empty strings or zeros.
func ToCSV(results []*domain.ResultRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, result := range results {
		createdDate := result.UploadDateFormatted
		if createdDate == "" {
			createdDate = result.UploadDate
		}

		row := []string{
			result.URL,
			result.Title,
			result.Uploader,
			result.UploaderID,
			createdDate,
			result.UploadDateISO,
			strconv.FormatFloat(result.Duration, 'f', -1, 64),
			strconv.FormatInt(result.ViewCount, 10),
			strconv.FormatInt(result.LikeCount, 10),
			strconv.FormatInt(result.CommentCount, 10),
			result.Language,
			result.Text,
			strconv.FormatBool(result.TranscriptionSuccess),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// document is the structured export wrapper.
type document struct {
	ExportDate               string                 `json:"export_date"`
	TotalVideos              int                    `json:"total_videos"`
	SuccessfulTranscriptions int                    `json:"successful_transcriptions"`
	Results                  []*domain.ResultRecord `json:"results"`
}

// ToJSON renders the full result list, segments included, wrapped with an
// export timestamp and counts. Output is pretty-printed UTF-8.
func ToJSON(results []*domain.ResultRecord) ([]byte, error) {
	successful := 0
	for _, result := range results {
		if result.TranscriptionSuccess {
			successful++
		}
	}

	doc := document{
		ExportDate:               time.Now().Format(time.RFC3339),
		TotalVideos:              len(results),
		SuccessfulTranscriptions: successful,
		Results:                  results,
	}

	return json.MarshalIndent(doc, "", "  ")
}

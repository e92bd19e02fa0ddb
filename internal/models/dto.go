package models

import (
	"time"

	"github.com/google/uuid"
)

// Report конверт результата анализа для API и WebSocket подписчиков
type Report struct {
	ID               string        `json:"id"`
	Timestamp        time.Time     `json:"timestamp"`
	Model            string        `json:"model"`
	Source           string        `json:"source,omitempty"`
	ProcessingTime   time.Duration `json:"-"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	Result           Result        `json:"result"`
}

// NewReport собирает отчёт с новым ID
func NewReport(model, source string, started time.Time, result Result) Report {
	elapsed := time.Since(started)
	return Report{
		ID:               uuid.NewString(),
		Timestamp:        started,
		Model:            model,
		Source:           source,
		ProcessingTime:   elapsed,
		ProcessingTimeMs: elapsed.Milliseconds(),
		Result:           result,
	}
}

// AnalyzeRequest тело POST /api/analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

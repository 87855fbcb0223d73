package domain

import (
	"context"
	"encoding/json"
)

// CalendarSummary is the yearwise submission heatmap for a user. The
// date->count mapping is passed through exactly as upstream returns it.
type CalendarSummary struct {
	TotalSubmissions int             `json:"totalSubmissions"`
	SubmissionDates  json.RawMessage `json:"submissionDates"`
}

type CalendarUsecase interface {
	Fetch(ctx context.Context, username string, year int) (*CalendarSummary, error)
}

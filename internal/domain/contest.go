package domain

import (
	"context"
	"encoding/json"
)

// ContestStanding summarizes a user's contest track record.
type ContestStanding struct {
	Level         int     `json:"level"`
	Rank          float64 `json:"rank"`
	GlobalRank    int     `json:"globalRank"`
	TotalContests int     `json:"totalContests"`
}

// ContestSummary is the payload served for a contest lookup. Per-contest
// details are an opaque upstream structure and are passed through as-is.
type ContestSummary struct {
	ContestData    ContestStanding `json:"contestData"`
	ContestDetails json.RawMessage `json:"contestDetails"`
}

type ContestUsecase interface {
	Fetch(ctx context.Context, username string, year int) (*ContestSummary, error)
}

package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpstreamTimeout reports that a call to GeeksforGeeks exhausted its
// per-call deadline. Callers map it to 504 rather than a generic failure.
var ErrUpstreamTimeout = errors.New("upstream request timed out")

// UpstreamError is a non-2xx response from GeeksforGeeks after retries.
type UpstreamError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream HTTP %d fetching %s", e.StatusCode, e.URL)
}

// UpstreamRepository issues the raw calls against GeeksforGeeks. The
// three methods match the three public data sources: the HTML practice
// page and the two internal practice-API endpoints.
type UpstreamRepository interface {
	ProfilePage(ctx context.Context, username string) ([]byte, error)
	SubmissionCalendar(ctx context.Context, username string, year int) ([]byte, error)
	ContestInfo(ctx context.Context, username string, year int) ([]byte, error)
}

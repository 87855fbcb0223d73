package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/apperror"
)

// mapUpstreamError converts transport-level failures into the status
// the client should see: timeouts become 504, upstream 502/503 keep
// their class, everything else is a 500.
func mapUpstreamError(err error) error {
	var ue *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return apperror.GatewayTimeout("Request timed out", err)
	case errors.As(err, &ue):
		switch ue.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable:
			return apperror.New(ue.StatusCode, "Request failed", err)
		default:
			return apperror.Internal("Request failed", err)
		}
	default:
		return apperror.Internal("Request failed", err)
	}
}

// cacheKey is structural over the call's input tuple and never derived
// from mutable state.
func cacheKey(username string, year int) string {
	return fmt.Sprintf("%s|%d", username, year)
}

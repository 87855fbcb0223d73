package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/apperror"
	"go-gfg-api/pkg/cache"
)

type calendarUsecase struct {
	repo   domain.UpstreamRepository
	cache  *cache.LRU[*domain.CalendarSummary]
	logger *slog.Logger
}

func NewCalendarUsecase(repo domain.UpstreamRepository, lru *cache.LRU[*domain.CalendarSummary], logger *slog.Logger) domain.CalendarUsecase {
	return &calendarUsecase{repo: repo, cache: lru, logger: logger}
}

func (u *calendarUsecase) Fetch(ctx context.Context, username string, year int) (*domain.CalendarSummary, error) {
	key := cacheKey(username, year)
	if cached, ok := u.cache.Get(key); ok {
		u.logger.Debug("calendar cache hit", "username", username, "year", year)
		return cached, nil
	}

	body, err := u.repo.SubmissionCalendar(ctx, username, year)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	var payload struct {
		Count  *int            `json:"count"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		u.logger.Error("calendar response is not valid JSON", "username", username, "error", err)
		return nil, apperror.Internal("Failed to parse JSON response", err)
	}

	if payload.Count == nil || payload.Result == nil {
		u.logger.Error("calendar response missing count or result", "username", username, "year", year)
		return nil, apperror.Internal("Unexpected API response format", nil)
	}

	summary := &domain.CalendarSummary{
		TotalSubmissions: *payload.Count,
		SubmissionDates:  payload.Result,
	}

	u.cache.Add(key, summary)
	u.logger.Info("calendar fetched", "username", username, "year", year, "total", summary.TotalSubmissions)
	return summary, nil
}

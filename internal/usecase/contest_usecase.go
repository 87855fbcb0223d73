package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/apperror"
	"go-gfg-api/pkg/cache"
)

type contestUsecase struct {
	repo   domain.UpstreamRepository
	cache  *cache.LRU[*domain.ContestSummary]
	logger *slog.Logger
}

func NewContestUsecase(repo domain.UpstreamRepository, lru *cache.LRU[*domain.ContestSummary], logger *slog.Logger) domain.ContestUsecase {
	return &contestUsecase{repo: repo, cache: lru, logger: logger}
}

// ratingPayload mirrors the rating endpoint's shape. Raw messages keep
// presence checks explicit: a nil field was absent upstream.
type ratingPayload struct {
	UserGlobalRank  json.RawMessage `json:"user_global_rank"`
	StarColourCodes json.RawMessage `json:"star_colour_codes"`
	UserStars       json.RawMessage `json:"user_stars"`
	UserContestData *struct {
		CurrentRating json.RawMessage `json:"current_rating"`
		Participated  json.RawMessage `json:"no_of_participated_contest"`
		ContestData   json.RawMessage `json:"contest_data"`
	} `json:"user_contest_data"`
}

func (u *contestUsecase) Fetch(ctx context.Context, username string, year int) (*domain.ContestSummary, error) {
	key := cacheKey(username, year)
	if cached, ok := u.cache.Get(key); ok {
		u.logger.Debug("contest cache hit", "username", username, "year", year)
		return cached, nil
	}

	body, err := u.repo.ContestInfo(ctx, username, year)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	var payload ratingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		u.logger.Error("contest response is not valid JSON", "username", username, "error", err)
		return nil, apperror.Internal("Failed to parse JSON response", err)
	}

	// star_colour_codes is never served back, but its absence is the
	// clearest signal the endpoint changed shape.
	if payload.UserGlobalRank == nil || payload.StarColourCodes == nil {
		u.logger.Error("contest response missing expected fields", "username", username, "year", year)
		return nil, apperror.Internal("Unexpected API response format", nil)
	}

	ucd := payload.UserContestData
	if ucd == nil || payload.UserStars == nil || ucd.CurrentRating == nil || ucd.Participated == nil || ucd.ContestData == nil {
		u.logger.Error("contest response missing nested contest data", "username", username, "year", year)
		return nil, apperror.Internal("Failed to parse contest data", nil)
	}

	summary := &domain.ContestSummary{
		ContestData: domain.ContestStanding{
			Level:         numInt(payload.UserStars),
			Rank:          numFloat(ucd.CurrentRating),
			GlobalRank:    numInt(payload.UserGlobalRank),
			TotalContests: numInt(ucd.Participated),
		},
		ContestDetails: ucd.ContestData,
	}

	u.cache.Add(key, summary)
	u.logger.Info("contest info fetched", "username", username, "year", year,
		"rank", summary.ContestData.Rank, "contests", summary.ContestData.TotalContests)
	return summary, nil
}

// numInt decodes a raw JSON number, tolerating null and non-numeric
// values as zero.
func numInt(raw json.RawMessage) int {
	return int(numFloat(raw))
}

func numFloat(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/apperror"

	"github.com/PuerkitoBio/goquery"
)

// problemBaseURL prefixes the slug of every solved problem.
const problemBaseURL = "https://practice.geeksforgeeks.org/problems/"

// embeddedDataSelector locates the JSON document the profile page embeds
// for client-side hydration.
const embeddedDataSelector = `script#__NEXT_DATA__[type="application/json"]`

type profileUsecase struct {
	repo   domain.UpstreamRepository
	logger *slog.Logger
}

func NewProfileUsecase(repo domain.UpstreamRepository, logger *slog.Logger) domain.ProfileUsecase {
	return &profileUsecase{repo: repo, logger: logger}
}

func (u *profileUsecase) Fetch(ctx context.Context, username string) (*domain.ProfileResult, error) {
	body, err := u.repo.ProfilePage(ctx, username)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			u.logger.Info("profile not found", "username", username)
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, mapUpstreamError(err)
	}

	raw, err := embeddedPageData(body)
	if err != nil {
		u.logger.Warn("no embedded data on profile page", "username", username, "error", err)
		return nil, apperror.NotFound("Could not find user data")
	}

	return u.parsePageData(username, raw)
}

// embeddedPageData pulls the hydration JSON out of the page HTML.
func embeddedPageData(body []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	sel := doc.Find(embeddedDataSelector).First()
	if sel.Length() == 0 {
		return nil, errors.New("embedded data script not present")
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil, errors.New("embedded data script is empty")
	}
	return []byte(text), nil
}

type pageProps struct {
	UserInfo            map[string]any  `json:"userInfo"`
	ContestData         map[string]any  `json:"contestData"`
	UserSubmissionsInfo json.RawMessage `json:"userSubmissionsInfo"`
}

func (u *profileUsecase) parsePageData(username string, raw []byte) (*domain.ProfileResult, error) {
	var root struct {
		Props *struct {
			PageProps *pageProps `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		u.logger.Error("embedded data is not valid JSON", "username", username, "error", err)
		return nil, apperror.Internal("Failed to parse user data", err)
	}

	if root.Props == nil || root.Props.PageProps == nil {
		u.logger.Error("embedded data missing expected structure", "username", username)
		return nil, apperror.Internal("Invalid data structure", nil)
	}

	pp := root.Props.PageProps
	if pp.UserInfo == nil {
		u.logger.Info("page has no user info", "username", username)
		return nil, apperror.NotFound("User info not found")
	}

	contest := pp.ContestData
	contestData := subMap(contest, "user_contest_data")

	info := domain.ProfileSummary{
		UserName:            username,
		FullName:            strField(pp.UserInfo, "name", ""),
		ProfilePicture:      strField(pp.UserInfo, "profile_image_url", ""),
		Institute:           strField(pp.UserInfo, "institute_name", ""),
		InstituteRank:       strField(pp.UserInfo, "institute_rank", ""),
		LongestStreak:       strField(pp.UserInfo, "pod_solved_longest_streak", "00"),
		CodingScore:         intField(pp.UserInfo, "score"),
		MonthlyScore:        intField(pp.UserInfo, "monthly_score"),
		CurrentRating:       intField(contestData, "current_rating"),
		UserGlobalRank:      intField(contest, "user_global_rank"),
		Level:               intField(contest, "user_stars"),
		TotalProblemsSolved: intField(pp.UserInfo, "total_problems_solved"),
	}

	stats, err := parseSolvedStats(pp.UserSubmissionsInfo)
	if err != nil {
		// Match the lenient handling of general info: a malformed
		// submissions block degrades to empty stats, not a failure.
		u.logger.Warn("could not parse submissions info", "username", username, "error", err)
		stats = domain.SolvedStats{}
	}

	return &domain.ProfileResult{Info: info, SolvedStats: stats}, nil
}

// parseSolvedStats walks difficulty -> problem-id -> detail. The outer
// difficulty keys land in a map, but problems within one difficulty are
// token-decoded so they keep the order the upstream page lists them in.
func parseSolvedStats(raw json.RawMessage) (domain.SolvedStats, error) {
	stats := domain.SolvedStats{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return stats, nil
	}

	var byDifficulty map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byDifficulty); err != nil {
		return nil, err
	}

	for difficulty, problems := range byDifficulty {
		questions, err := parseQuestions(problems)
		if err != nil {
			return nil, fmt.Errorf("difficulty %q: %w", difficulty, err)
		}
		stats[strings.ToLower(difficulty)] = domain.DifficultyStats{
			Count:     len(questions),
			Questions: questions,
		}
	}
	return stats, nil
}

func parseQuestions(raw json.RawMessage) ([]domain.QuestionRef, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected an object of problems")
	}

	questions := []domain.QuestionRef{}
	for dec.More() {
		// Problem id key; only the detail value matters.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		var detail struct {
			Pname string `json:"pname"`
			Slug  string `json:"slug"`
		}
		if err := dec.Decode(&detail); err != nil {
			return nil, err
		}

		questions = append(questions, domain.QuestionRef{
			Question:    detail.Pname,
			QuestionURL: problemBaseURL + detail.Slug,
		})
	}
	return questions, nil
}

// strField reads a string-ish field, stringifying numbers the way the
// upstream page sometimes delivers ranks.
func strField(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fallback
	}
}

// intField reads a numeric field, defaulting to 0 when absent or not a
// number. Indexing a nil map is fine, so callers can pass missing
// sub-objects straight through.
func intField(m map[string]any, key string) int {
	switch t := m[key].(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func subMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

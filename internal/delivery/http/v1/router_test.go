package v1_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gfg-api/config"
	v1 "go-gfg-api/internal/delivery/http/v1"
	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) Fetch(ctx context.Context, username string) (*domain.ProfileResult, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileResult), args.Error(1)
}

type MockCalendarUsecase struct {
	mock.Mock
}

func (m *MockCalendarUsecase) Fetch(ctx context.Context, username string, year int) (*domain.CalendarSummary, error) {
	args := m.Called(ctx, username, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarSummary), args.Error(1)
}

type MockContestUsecase struct {
	mock.Mock
}

func (m *MockContestUsecase) Fetch(ctx context.Context, username string, year int) (*domain.ContestSummary, error) {
	args := m.Called(ctx, username, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContestSummary), args.Error(1)
}

type routerMocks struct {
	profile  *MockProfileUsecase
	calendar *MockCalendarUsecase
	contest  *MockContestUsecase
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		RateLimitPerMinute: 100,
		RateLimitPerHour:   500,
		RateLimitPerDay:    2000,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, routerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mocks := routerMocks{
		profile:  new(MockProfileUsecase),
		calendar: new(MockCalendarUsecase),
		contest:  new(MockContestUsecase),
	}
	r := v1.NewRouter(v1.RouterDeps{
		ProfileUC:  mocks.profile,
		CalendarUC: mocks.calendar,
		ContestUC:  mocks.contest,
		Config:     cfg,
		Logger:     slog.New(slog.DiscardHandler),
	})
	return r, mocks
}

func doRequest(r *gin.Engine, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRouter_Profile_Success(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	result := &domain.ProfileResult{
		Info:        domain.ProfileSummary{UserName: "gabbu", FullName: "Gabbar Singh"},
		SolvedStats: domain.SolvedStats{},
	}
	mocks.profile.On("Fetch", mock.Anything, "gabbu").Return(result, nil)

	w := doRequest(r, http.MethodGet, "/gabbu", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.ProfileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "gabbu", got.Info.UserName)
	mocks.profile.AssertExpectations(t)
}

func TestRouter_Profile_InvalidUsername(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	w := doRequest(r, http.MethodGet, "/bad..name", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Invalid username format", body["error"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status_code"])
	mocks.profile.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestRouter_Profile_NotFound(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	mocks.profile.On("Fetch", mock.Anything, "ghost").
		Return(nil, apperror.NotFound("Profile not found"))

	w := doRequest(r, http.MethodGet, "/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Profile not found", body["error"])
}

func TestRouter_Profile_Timeout(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	mocks.profile.On("Fetch", mock.Anything, "slowpoke").
		Return(nil, apperror.GatewayTimeout("Request timed out", nil))

	w := doRequest(r, http.MethodGet, "/slowpoke", nil)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "Request timed out", errorBody(t, w)["error"])
}

func TestRouter_Profile_UnknownError(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	mocks.profile.On("Fetch", mock.Anything, "gabbu").
		Return(nil, assert.AnError)

	w := doRequest(r, http.MethodGet, "/gabbu", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, "An unexpected error occurred. Please try again later.", body["message"])
}

func TestRouter_Calendar_YearHandling(t *testing.T) {
	t.Run("explicit year is forwarded", func(t *testing.T) {
		r, mocks := newTestRouter(t, testConfig())
		summary := &domain.CalendarSummary{
			TotalSubmissions: 3,
			SubmissionDates:  json.RawMessage(`{"2019-01-02":3}`),
		}
		mocks.calendar.On("Fetch", mock.Anything, "gabbu", 2019).Return(summary, nil)

		w := doRequest(r, http.MethodGet, "/gabbu/calendar?year=2019", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"totalSubmissions":3,"submissionDates":{"2019-01-02":3}}`, w.Body.String())
		mocks.calendar.AssertExpectations(t)
	})

	t.Run("non-numeric year is rejected", func(t *testing.T) {
		r, mocks := newTestRouter(t, testConfig())

		w := doRequest(r, http.MethodGet, "/gabbu/calendar?year=abcd", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid year format", errorBody(t, w)["error"])
		mocks.calendar.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explicit zero year is rejected", func(t *testing.T) {
		r, mocks := newTestRouter(t, testConfig())

		for _, target := range []string{"/gabbu/calendar?year=0", "/gabbu/calendar?year=00"} {
			w := doRequest(r, http.MethodGet, target, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code, "expected %s to be rejected", target)
			assert.Equal(t, "Invalid year format", errorBody(t, w)["error"])
		}
		mocks.calendar.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("absent year defaults to current", func(t *testing.T) {
		r, mocks := newTestRouter(t, testConfig())
		summary := &domain.CalendarSummary{SubmissionDates: json.RawMessage(`{}`)}
		mocks.calendar.On("Fetch", mock.Anything, "gabbu", time.Now().Year()).Return(summary, nil)

		w := doRequest(r, http.MethodGet, "/gabbu/calendar", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mocks.calendar.AssertExpectations(t)
	})

	t.Run("year before 2000 is rejected", func(t *testing.T) {
		r, _ := newTestRouter(t, testConfig())

		w := doRequest(r, http.MethodGet, "/gabbu/calendar?year=1999", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid year format", errorBody(t, w)["error"])
	})
}

func TestRouter_Contest_Success(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())

	summary := &domain.ContestSummary{
		ContestData: domain.ContestStanding{
			Level:         3,
			Rank:          1702.25,
			GlobalRank:    311,
			TotalContests: 12,
		},
		ContestDetails: json.RawMessage(`[]`),
	}
	mocks.contest.On("Fetch", mock.Anything, "gabbu", mock.AnythingOfType("int")).
		Return(summary, nil)

	w := doRequest(r, http.MethodGet, "/gabbu/contest", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.ContestSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.ContestData.Level)
	assert.InDelta(t, 1702.25, got.ContestData.Rank, 0.001)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 3
	r, mocks := newTestRouter(t, cfg)

	mocks.profile.On("Fetch", mock.Anything, "gabbu").
		Return(&domain.ProfileResult{SolvedStats: domain.SolvedStats{}}, nil)

	for range 3 {
		w := doRequest(r, http.MethodGet, "/gabbu", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/gabbu", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Too many requests", body["error"])
	assert.Equal(t, "Rate limit exceeded. Please try again in a minute.", body["message"])
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRouter_RateLimit_SkipsMetaRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	r, _ := newTestRouter(t, cfg)

	for range 5 {
		w := doRequest(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRouter_Index(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	t.Run("plain text by default", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "GeeksforGeeks Profile API")
		assert.Contains(t, w.Body.String(), "/{username}/calendar")
	})

	t.Run("json when asked", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/?format=json", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var desc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
		assert.Equal(t, "GeeksforGeeks Profile API", desc["name"])
	})

	t.Run("json via accept header", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/", map[string]string{"Accept": "application/json"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doRequest(r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_NoRoute(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doRequest(r, http.MethodGet, "/gabbu/unknown/deep", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "The requested resource was not found.", body["message"])
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r, mocks := newTestRouter(t, testConfig())
	mocks.profile.On("Fetch", mock.Anything, "gabbu").
		Return(&domain.ProfileResult{SolvedStats: domain.SolvedStats{}}, nil)

	t.Run("generated when absent", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/gabbu", nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("echoed when provided", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/gabbu", map[string]string{"X-Request-ID": "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func TestRouter_CORS(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	t.Run("wildcard when unconfigured", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/health", map[string]string{"Origin": "https://example.com"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		w := doRequest(r, http.MethodOptions, "/gabbu", map[string]string{"Origin": "https://example.com"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

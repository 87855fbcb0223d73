// Package geeksforgeeks implements the outbound calls against the
// GeeksforGeeks website and its internal practice API.
package geeksforgeeks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-gfg-api/internal/domain"

	"github.com/codeGROOVE-dev/retry"
)

// userAgent mirrors a desktop browser; the profile page serves a
// different shell to unknown agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config controls endpoints and the outbound call policy.
type Config struct {
	BaseURL        string // profile pages, e.g. https://auth.geeksforgeeks.org
	APIBaseURL     string // practice API, e.g. https://practiceapi.geeksforgeeks.org
	ProfileTimeout time.Duration
	APITimeout     time.Duration
	Attempts       uint
	BaseDelay      time.Duration
}

// Client issues upstream requests with retries and per-call timeouts.
// The underlying transport and its connection pool are shared across
// all calls for the lifetime of the process.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.ProfileTimeout <= 0 {
		cfg.ProfileTimeout = 30 * time.Second
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 10 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     logger,
	}
}

var _ domain.UpstreamRepository = (*Client)(nil)

// ProfilePage fetches the HTML of a user's public practice page.
func (c *Client) ProfilePage(ctx context.Context, username string) ([]byte, error) {
	pageURL := fmt.Sprintf("%s/user/%s/practice/", c.cfg.BaseURL, url.PathEscape(username))

	headers := map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}

	return c.do(ctx, http.MethodGet, pageURL, nil, headers, c.cfg.ProfileTimeout)
}

// SubmissionCalendar calls the yearwise submission endpoint.
func (c *Client) SubmissionCalendar(ctx context.Context, username string, year int) ([]byte, error) {
	endpoint := c.cfg.APIBaseURL + "/api/v1/user/problems/submissions/"

	payload, err := json.Marshal(map[string]any{
		"handle":      username,
		"requestType": "getYearwiseUserSubmissions",
		"year":        year,
		"month":       "",
	})
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, endpoint, payload, jsonHeaders(), c.cfg.APITimeout)
}

// ContestInfo calls the rating endpoint. The username travels
// base64-encoded in the path; the upstream API requires that encoding.
func (c *Client) ContestInfo(ctx context.Context, username string, year int) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(username))
	endpoint := fmt.Sprintf("%s/api/v1/rating/%s/info?year=%d", c.cfg.APIBaseURL, encoded, year)

	return c.do(ctx, http.MethodPost, endpoint, nil, jsonHeaders(), c.cfg.APITimeout)
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"User-Agent":   userAgent,
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// do runs one upstream call with the fixed retry policy: up to
// cfg.Attempts tries, exponential backoff from cfg.BaseDelay, retrying
// only connection-level failures, timeouts and HTTP 429/500/502/503/504.
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, headers map[string]string, timeout time.Duration) ([]byte, error) {
	data, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.attempt(ctx, method, rawURL, body, headers, timeout)
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.Attempts),
		retry.Delay(c.cfg.BaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying upstream request",
				"attempt", n+1, "method", method, "url", rawURL, "error", err)
		}),
	)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, domain.ErrUpstreamTimeout) {
			// Inbound request went away; don't dress this up as an
			// upstream failure.
			return nil, ctx.Err()
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) attempt(ctx context.Context, method, rawURL string, body []byte, headers map[string]string, timeout time.Duration) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.ContentLength = int64(len(body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attemptCtx.Err() != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrUpstreamTimeout, method, rawURL)
		}
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // intentional

	if resp.StatusCode >= http.StatusBadRequest {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if attemptCtx.Err() != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrUpstreamTimeout, method, rawURL)
		}
		return nil, err
	}

	c.logger.Debug("upstream response",
		"method", method, "url", rawURL, "status", strconv.Itoa(resp.StatusCode), "bytes", len(data))
	return data, nil
}

// isRetryableError reports whether an upstream failure is transient.
// 4xx responses other than 429 are permanent.
func isRetryableError(err error) bool {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		switch ue.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	// Connection failures and timeouts.
	return true
}

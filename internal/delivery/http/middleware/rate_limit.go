package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-gfg-api/internal/delivery/http/response"
	"go-gfg-api/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// Window is one fixed counting window. All configured windows are
// enforced together; the first currently-exceeded one wins.
type Window struct {
	Name   string
	Limit  int
	Period time.Duration
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Windows []Window
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for the backing store
	KeyPrefix string
	Logger    *slog.Logger
}

// rateLimitEntry tracks request count for a key (in-memory store)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// DefaultWindows returns the standard per-address policy.
func DefaultWindows(perMinute, perHour, perDay int) []Window {
	return []Window{
		{Name: "minute", Limit: perMinute, Period: time.Minute},
		{Name: "hour", Limit: perHour, Period: time.Hour},
		{Name: "day", Limit: perDay, Period: 24 * time.Hour},
	}
}

// sweepInterval bounds how often expired in-memory counters are
// dropped. Sweeping happens inline on request handling, so a limiter
// owns no background goroutine and tests can build routers freely.
const sweepInterval = 5 * time.Minute

type rateLimiter struct {
	cfg       RateLimitConfig
	store     sync.Map
	sweepMu   sync.Mutex
	nextSweep time.Time
}

// RateLimitMiddleware enforces every configured window per client key.
// Counters live in Redis when it is configured, in process memory
// otherwise; Redis errors fall open to the in-memory store so a broken
// limiter backend never takes the API down.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	rl := &rateLimiter{cfg: cfg}

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)
		now := time.Now()
		rl.maybeSweep(now)

		type result struct {
			window  Window
			count   int
			resetAt time.Time
		}
		results := make([]result, 0, len(cfg.Windows))

		redisClient := redis.Client()
		for _, w := range cfg.Windows {
			fullKey := fmt.Sprintf("%s%s:%s", cfg.KeyPrefix, w.Name, key)

			var count int
			var resetAt time.Time
			var err error
			if redisClient != nil {
				count, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, w)
			}
			if redisClient == nil || err != nil {
				if err != nil {
					cfg.Logger.Warn("redis rate limit check failed, using in-memory counters", "error", err)
				}
				count, resetAt = rl.checkInMemory(fullKey, w, now)
			}
			results = append(results, result{window: w, count: count, resetAt: resetAt})
		}

		for _, r := range results {
			if r.count <= r.window.Limit {
				continue
			}

			retryAfter := max(int(time.Until(r.resetAt).Seconds()), 1)
			c.Header("X-RateLimit-Limit", strconv.Itoa(r.window.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", r.resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			cfg.Logger.Info("rate limit exceeded",
				"key", key, "window", r.window.Name, "count", r.count,
				"path", c.FullPath(), "request_id", c.GetString("RequestID"))

			response.ErrorWithMessage(c, http.StatusTooManyRequests,
				"Too many requests", "Rate limit exceeded. Please try again in a minute.")
			c.Abort()
			return
		}

		// Advertise the tightest window.
		if len(results) > 0 {
			tightest := results[0]
			for _, r := range results[1:] {
				if r.window.Limit-r.count < tightest.window.Limit-tightest.count {
					tightest = r
				}
			}
			remaining := max(tightest.window.Limit-tightest.count, 0)
			c.Header("X-RateLimit-Limit", strconv.Itoa(tightest.window.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", tightest.resetAt.Format(time.RFC3339))
		}

		c.Next()
	}
}

// checkRateLimitRedis checks one window using an atomic Lua script.
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, w Window) (int, time.Time, error) {
	ttlSeconds := int(w.Period.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	count, ttl, err := decodeRateLimitEval(result)
	if err != nil {
		return 0, time.Time{}, err
	}

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// decodeRateLimitEval unpacks the [count, ttl] reply of the Lua script.
// Anything unexpected is an error, so callers visibly fall back to the
// in-memory store instead of counting from zero.
func decodeRateLimitEval(result any) (count, ttl int64, err error) {
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format: %T", result)
	}

	count, ok = arr[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis count type: %T", arr[0])
	}
	ttl, ok = arr[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis ttl type: %T", arr[1])
	}
	return count, ttl, nil
}

// checkInMemory checks one window against the in-process store.
func (rl *rateLimiter) checkInMemory(key string, w Window, now time.Time) (int, time.Time) {
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(w.Period),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(w.Period)
	}

	entry.count++
	return entry.count, entry.resetAt
}

// maybeSweep drops expired in-memory counters at most once per
// sweepInterval. Runs inline; only the interval check holds a lock.
func (rl *rateLimiter) maybeSweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Before(rl.nextSweep) {
		rl.sweepMu.Unlock()
		return
	}
	rl.nextSweep = now.Add(sweepInterval)
	rl.sweepMu.Unlock()

	rl.store.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		expired := now.After(entry.resetAt)
		entry.mu.Unlock()
		if expired {
			rl.store.Delete(key)
		}
		return true
	})
}

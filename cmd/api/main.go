package main

import (
	"context"
	"go-gfg-api/config"
	_ "go-gfg-api/docs" // Important for Swagger
	v1 "go-gfg-api/internal/delivery/http/v1"
	"go-gfg-api/internal/domain"
	"go-gfg-api/internal/repository/geeksforgeeks"
	"go-gfg-api/internal/usecase"
	"go-gfg-api/pkg/cache"
	"go-gfg-api/pkg/logger"
	"go-gfg-api/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title           GeeksforGeeks Profile API
// @version         1.0
// @description     Read-only JSON facade over public GeeksforGeeks profile, calendar and contest data.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logg := logger.New(cfg.LogLevel)
	logg.Info("Starting gfg profile api", "port", cfg.Port)

	// 3. Setup Redis (optional, backs the shared rate limiter)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logg.Warn("Redis unavailable, rate limiting falls back to in-memory counters", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 4. Setup Upstream Client
	upstream := geeksforgeeks.NewClient(geeksforgeeks.Config{
		BaseURL:        cfg.UpstreamBaseURL,
		APIBaseURL:     cfg.PracticeAPIBaseURL,
		ProfileTimeout: time.Duration(cfg.ProfileTimeoutSeconds) * time.Second,
		APITimeout:     time.Duration(cfg.APITimeoutSeconds) * time.Second,
		Attempts:       uint(cfg.RetryAttempts),
		BaseDelay:      time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
	}, logg)

	// 5. Setup Caches
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	calendarCache := cache.NewLRU[*domain.CalendarSummary](cfg.CacheCapacity, cacheTTL)
	contestCache := cache.NewLRU[*domain.ContestSummary](cfg.CacheCapacity, cacheTTL)

	// 6. Setup UseCases
	profileUC := usecase.NewProfileUsecase(upstream, logg)
	calendarUC := usecase.NewCalendarUsecase(upstream, calendarCache, logg)
	contestUC := usecase.NewContestUsecase(upstream, contestCache, logg)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:  profileUC,
		CalendarUC: calendarUC,
		ContestUC:  contestUC,
		Config:     cfg,
		Logger:     logg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("Server forced to shutdown", "error", err)
	}

	logg.Info("Server exiting")
}

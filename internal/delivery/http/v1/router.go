package v1

import (
	"log/slog"
	"net/http"

	"go-gfg-api/config"
	"go-gfg-api/internal/delivery/http/middleware"
	"go-gfg-api/internal/delivery/http/response"
	"go-gfg-api/internal/domain"
	"go-gfg-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC  domain.ProfileUsecase
	CalendarUC domain.CalendarUsecase
	ContestUC  domain.ContestUsecase
	Config     *config.Config
	Logger     *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(deps.Logger))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API description at the root
	NewIndexHandler(r, map[string]int{
		"per_minute": deps.Config.RateLimitPerMinute,
		"per_hour":   deps.Config.RateLimitPerHour,
		"per_day":    deps.Config.RateLimitPerDay,
	})

	// Data routes share the per-address rate limit policy
	limited := r.Group("")
	limited.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Windows: middleware.DefaultWindows(
			deps.Config.RateLimitPerMinute,
			deps.Config.RateLimitPerHour,
			deps.Config.RateLimitPerDay,
		),
		Logger: deps.Logger,
	}))
	{
		NewProfileHandler(limited, deps.ProfileUC)
		NewCalendarHandler(limited, deps.CalendarUC)
		NewContestHandler(limited, deps.ContestUC)
	}

	r.NoRoute(func(c *gin.Context) {
		response.ErrorWithMessage(c, http.StatusNotFound,
			"Not Found", "The requested resource was not found.")
	})

	return r
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-gfg-api/internal/delivery/http/response"
	"go-gfg-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors appended to the gin context into the
// standard error body. Typed AppErrors keep their status and message;
// anything else is logged and hidden behind a generic 500 so internal
// details never reach the client.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Error("request failed",
					"path", c.FullPath(), "status", appErr.Code,
					"message", appErr.Message, "error", appErr.Err,
					"request_id", c.GetString("RequestID"))
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Error("unhandled error",
			"path", c.FullPath(), "error", err, "request_id", c.GetString("RequestID"))
		response.ErrorWithMessage(c, http.StatusInternalServerError,
			"Internal Server Error", "An unexpected error occurred. Please try again later.")
	}
}

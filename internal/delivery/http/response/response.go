package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error shape for every failure the API
// returns. Message carries the fixed human-readable hint some handlers
// attach (rate limiting, unknown routes, unexpected failures).
type ErrorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code"`
}

// Error sends the standard error body.
func Error(c *gin.Context, code int, errMsg string) {
	c.JSON(code, ErrorBody{
		Error:      errMsg,
		StatusCode: code,
	})
}

// ErrorWithMessage sends the standard error body with the extra hint.
func ErrorWithMessage(c *gin.Context, code int, errMsg, message string) {
	c.JSON(code, ErrorBody{
		Error:      errMsg,
		Message:    message,
		StatusCode: code,
	})
}

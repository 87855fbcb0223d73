package v1

import (
	"time"

	"go-gfg-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type usernameURI struct {
	Username string `uri:"username" binding:"required,gfg_username"`
}

// Year binds through a pointer so presence is detectable: nil means the
// parameter was absent and defaults to the current year, while an
// explicit out-of-range value (including 0) is rejected.
type yearQuery struct {
	Year *int `form:"year" binding:"omitempty,min=2000,max_current_year"`
}

// bindUsername validates the path username. Handles reject anything
// outside [A-Za-z0-9_-] before an upstream call is attempted.
func bindUsername(c *gin.Context) (string, bool) {
	var uri usernameURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Error(apperror.BadRequest("Invalid username format")) //nolint:errcheck
		return "", false
	}
	return uri.Username, true
}

// bindYear validates the optional year query parameter and defaults it
// to the current calendar year.
func bindYear(c *gin.Context) (int, bool) {
	var q yearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(apperror.BadRequest("Invalid year format")) //nolint:errcheck
		return 0, false
	}
	if q.Year == nil {
		return time.Now().Year(), true
	}
	return *q.Year, true
}

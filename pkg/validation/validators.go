package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Usernames are restricted to the characters GeeksforGeeks itself
// accepts for handles.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("gfg_username", ValidUsername)
	_ = v.RegisterValidation("max_current_year", MaxCurrentYear)
}

// ValidUsername validates a GeeksforGeeks handle: alphanumeric plus
// underscores and hyphens, never empty.
func ValidUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// MaxCurrentYear validates that an integer field (year) does not exceed
// the current year. Absence is the caller's concern: bind through a
// pointer and let omitempty skip nil, so an explicit 0 still lands here.
func MaxCurrentYear(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}

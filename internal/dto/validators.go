package dto

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterCustomValidators installs the validation tags used by the auth
// payloads on the given validator engine.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("alphanumunderscore", validateAlphanumUnderscore); err != nil {
		return err
	}
	return v.RegisterValidation("strongpassword", validateStrongPassword)
}

// validateAlphanumUnderscore accepts usernames made of letters, digits and
// underscores only. Length bounds are enforced by min/max tags.
func validateAlphanumUnderscore(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// validateStrongPassword requires at least 8 characters with at least one
// upper-case letter, one lower-case letter and one digit.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

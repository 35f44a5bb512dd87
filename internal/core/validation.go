// AngelaMos | 2026
// validation.go

package core

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// NewValidator returns a validator with the shared custom rules
// registered. The password rule requires at least one uppercase letter
// and one special character; length bounds live in the struct tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // registration only fails on a nil/blank tag
	_ = v.RegisterValidation("password", validatePassword)

	return v
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return uppercaseRegex.MatchString(password) &&
		specialCharRegex.MatchString(password)
}

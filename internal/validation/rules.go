// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
)

var (
	// emailRegex follows the address pattern accepted by the farmer sign-up form.
	emailRegex = regexp.MustCompile(`^[\w.\-]+@([\w\-]+\.)+[\w\-]{2,4}$`)

	phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

	// nationalIDRegex matches a 12 digit Aadhaar number; the first digit is never 0 or 1.
	nationalIDRegex = regexp.MustCompile(`^[2-9][0-9]{11}$`)
)

// WrapValidationError converts jellydator validation errors into an
// apperrors.ValidationError keyed by JSON field path. Nested struct errors are
// flattened with dots (e.g. "farmData.livestock.pigs.total").
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var vErrs validation.Errors
	if apperrors.As(err, &vErrs) {
		fields := make(map[string]string)
		flatten("", vErrs, fields)
		return apperrors.NewValidationError(fields)
	}

	var internal validation.InternalError
	if apperrors.As(err, &internal) {
		return apperrors.Wrap(internal, "validation failed")
	}

	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		var nested validation.Errors
		if apperrors.As(err, &nested) {
			flatten(path, nested, out)
			continue
		}
		out[path] = err.Error()
	}
}

// PasswordStrength enforces the sign-up password rule: at least MinLength characters,
// counted as runes.
type PasswordStrength struct {
	MinLength int
}

// Validate checks the password length.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if utf8.RuneCountInString(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}
	return nil
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// Phone accepts 10 to 15 ASCII digits.
var Phone = validation.NewStringRuleWithError(
	func(s string) bool {
		return phoneRegex.MatchString(s)
	},
	validation.NewError("validation_phone_format", "must be 10 to 15 digits"),
)

// NationalID accepts a 12 digit Aadhaar number starting with 2-9.
var NationalID = validation.NewStringRuleWithError(
	func(s string) bool {
		return nationalIDRegex.MatchString(s)
	},
	validation.NewError("validation_national_id_format", "must be a valid 12-digit Aadhaar number"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NonNegative rejects negative numbers. It accepts any signed integer or float kind.
var NonNegative = validation.By(func(value interface{}) error {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return validation.NewError("validation_non_negative", "must not be negative")
		}
	case int64:
		if v < 0 {
			return validation.NewError("validation_non_negative", "must not be negative")
		}
	case float64:
		if v < 0 {
			return validation.NewError("validation_non_negative", "must not be negative")
		}
	}
	return nil
})

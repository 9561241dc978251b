package domain

import (
	"github.com/farmrakshaa/farm-guardian/internal/errors"
)

// Session token errors.
var (
	// ErrInvalidToken indicates a malformed token, a bad signature or an unexpected algorithm.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrMissingToken indicates the request carried neither a bearer header nor a session cookie.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "authentication token is required")

	// ErrMissingSigningSecret is returned when the token service is built without a secret.
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")
)

// Package service provides session token signing and verification.
package service

import (
	"github.com/google/uuid"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
)

// TokenService issues and verifies self-contained session tokens. No server-side
// session state is kept; a token is valid until it expires.
type TokenService interface {
	// Issue signs a token for the user that expires after the configured lifetime.
	Issue(userID uuid.UUID) (*authDomain.IssuedToken, error)

	// Verify checks signature, algorithm and expiry and returns the user id.
	// Returns ErrTokenExpired for expired tokens and ErrInvalidToken for anything else.
	Verify(token string) (uuid.UUID, error)
}

// Package domain defines the session types shared by the auth service, use case and
// HTTP layer.
package domain

import (
	"time"

	"github.com/google/uuid"

	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// IssuedToken is a signed session token and its expiry.
type IssuedToken struct {
	Token     string
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Session is the result of a successful register or login.
type Session struct {
	User  *userDomain.User
	Token *IssuedToken
}

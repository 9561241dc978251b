// Package domain defines the farmer account aggregate: identity, credentials and the
// embedded farm profile.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/errors"
)

// Role is the display role of an account. It carries no authorization effect.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the aggregate root. PasswordHash is only populated by the credential
// lookup used for login; every other read leaves it empty.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Address      string
	NationalID   string
	Village      string
	PasswordHash string
	Role         Role
	FarmData     FarmData
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WithoutPassword returns a copy safe to hand to callers outside the credential path.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrDuplicateEmail indicates another account already uses the email.
	ErrDuplicateEmail = errors.Wrap(errors.ErrConflict, "email already exists")

	// ErrDuplicateNationalID indicates another account already uses the Aadhaar number.
	ErrDuplicateNationalID = errors.Wrap(errors.ErrConflict, "Aadhaar number already registered")

	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrEmptyPassword is returned by NewCredential for an empty plaintext.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password is required")
)

// Package usecase orchestrates credential checks and session token issuance.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// SessionUseCase defines the session lifecycle. Sessions are stateless tokens, so
// there is no revocation; logout only clears the client cookie.
type SessionUseCase interface {
	// Register creates the account and signs a token for it.
	Register(ctx context.Context, input userUsecase.RegisterInput) (*authDomain.Session, error)

	// Login verifies credentials and signs a token.
	Login(ctx context.Context, input userUsecase.LoginInput) (*authDomain.Session, error)

	// Authenticate verifies a token and returns the user id it was issued for.
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	authService "github.com/farmrakshaa/farm-guardian/internal/auth/service"
	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// sessionUseCase implements SessionUseCase on top of the user use case.
type sessionUseCase struct {
	userUseCase  userUsecase.UseCase
	tokenService authService.TokenService
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(userUseCase userUsecase.UseCase, tokenService authService.TokenService) SessionUseCase {
	return &sessionUseCase{
		userUseCase:  userUseCase,
		tokenService: tokenService,
	}
}

// Register creates the account and returns it with a fresh token.
func (s *sessionUseCase) Register(
	ctx context.Context,
	input userUsecase.RegisterInput,
) (*authDomain.Session, error) {
	user, err := s.userUseCase.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login returns the account with a fresh token. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *sessionUseCase) Login(ctx context.Context, input userUsecase.LoginInput) (*authDomain.Session, error) {
	user, err := s.userUseCase.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate only checks the token; the user record is not loaded.
func (s *sessionUseCase) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, authDomain.ErrMissingToken
	}
	return s.tokenService.Verify(token)
}

func (s *sessionUseCase) issue(user *userDomain.User) (*authDomain.Session, error) {
	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &authDomain.Session{User: user, Token: token}, nil
}

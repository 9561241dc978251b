// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// Register mocks the Register method of SessionUseCase.
func (m *MockSessionUseCase) Register(
	ctx context.Context,
	input userUsecase.RegisterInput,
) (*authDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Login mocks the Login method of SessionUseCase.
func (m *MockSessionUseCase) Login(ctx context.Context, input userUsecase.LoginInput) (*authDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Authenticate mocks the Authenticate method of SessionUseCase.
func (m *MockSessionUseCase) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// Package mocks provides mock implementations of the user use case for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
	"github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// MockUseCase is a mock implementation of usecase.UseCase.
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Register mocks the Register method.
func (m *MockUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return m.userResult(m.Called(ctx, input))
}

// Login mocks the Login method.
func (m *MockUseCase) Login(ctx context.Context, input usecase.LoginInput) (*domain.User, error) {
	return m.userResult(m.Called(ctx, input))
}

// GetProfile mocks the GetProfile method.
func (m *MockUseCase) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.userResult(m.Called(ctx, id))
}

// GetFarmData mocks the GetFarmData method.
func (m *MockUseCase) GetFarmData(ctx context.Context, id uuid.UUID) (*domain.FarmData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmData), args.Error(1)
}

// UpdateFarmData mocks the UpdateFarmData method.
func (m *MockUseCase) UpdateFarmData(
	ctx context.Context,
	id uuid.UUID,
	input usecase.FarmDataInput,
) (*domain.User, error) {
	return m.userResult(m.Called(ctx, id, input))
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	authMocks "github.com/farmrakshaa/farm-guardian/internal/auth/http/mocks"
	"github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	mockNext := &authMocks.MockSessionUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	userID := uuid.New()

	t.Run("Login success", func(t *testing.T) {
		input := userUsecase.LoginInput{Email: "asha@example.com", Password: "secret123"}
		session := &authDomain.Session{User: &userDomain.User{ID: userID}}

		mockNext.On("Login", ctx, input).Return(session, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "session_login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "session_login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Login(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, session, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Register error", func(t *testing.T) {
		input := userUsecase.RegisterInput{Email: "asha@example.com"}

		mockNext.On("Register", ctx, input).Return(nil, userDomain.ErrDuplicateEmail).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "session_register", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "session_register", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Register(ctx, input)
		assert.ErrorIs(t, err, userDomain.ErrDuplicateEmail)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate error", func(t *testing.T) {
		mockNext.On("Authenticate", ctx, "bad").Return(uuid.Nil, authDomain.ErrInvalidToken).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "session_authenticate", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "session_authenticate", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "bad")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Equal(t, uuid.Nil, res)
		mockMetrics.AssertExpectations(t)
	})
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	"github.com/farmrakshaa/farm-guardian/internal/metrics"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for session creation at sign-up.
func (s *sessionUseCaseWithMetrics) Register(
	ctx context.Context,
	input userUsecase.RegisterInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_register", status)
	s.metrics.RecordDuration(ctx, "auth", "session_register", time.Since(start), status)

	return session, err
}

// Login records metrics for session creation at login.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input userUsecase.LoginInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_login", status)
	s.metrics.RecordDuration(ctx, "auth", "session_login", time.Since(start), status)

	return session, err
}

// Authenticate records metrics for token verification.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	start := time.Now()
	userID, err := s.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_authenticate", status)
	s.metrics.RecordDuration(ctx, "auth", "session_authenticate", time.Since(start), status)

	return userID, err
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/metrics"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// Register records metrics for account registration.
func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

// Login records metrics for login attempts.
func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Login(ctx, input)
	u.record(ctx, "user_login", start, err)
	return user, err
}

// GetProfile records metrics for profile reads.
func (u *userUseCaseWithMetrics) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetProfile(ctx, id)
	u.record(ctx, "user_get_profile", start, err)
	return user, err
}

// GetFarmData records metrics for farm profile reads.
func (u *userUseCaseWithMetrics) GetFarmData(ctx context.Context, id uuid.UUID) (*domain.FarmData, error) {
	start := time.Now()
	farmData, err := u.next.GetFarmData(ctx, id)
	u.record(ctx, "farm_data_get", start, err)
	return farmData, err
}

// UpdateFarmData records metrics for farm profile updates.
func (u *userUseCaseWithMetrics) UpdateFarmData(
	ctx context.Context,
	id uuid.UUID,
	input FarmDataInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateFarmData(ctx, id, input)
	u.record(ctx, "farm_data_update", start, err)
	return user, err
}

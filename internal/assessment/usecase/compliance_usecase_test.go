package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	"github.com/farmrakshaa/farm-guardian/internal/assessment/usecase/mocks"
)

var complianceNow = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

func newTestComplianceUseCase(repo ChecklistRepository) *complianceUseCase {
	return &complianceUseCase{
		repo: repo,
		now:  func() time.Time { return complianceNow },
	}
}

func TestComplianceUseCase_Checklists(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts from the daily checklist", func(t *testing.T) {
		repo := &mocks.MockChecklistRepository{}
		repo.On("List", ctx).Return([]domain.Checklist{}, nil).Once()

		checklists, err := newTestComplianceUseCase(repo).Checklists(ctx)
		require.NoError(t, err)
		require.Len(t, checklists, 1)
		assert.Equal(t, "daily-hygiene", checklists[0].ID)
		assert.Zero(t, checklists[0].CompletionRate())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("stored checklists are returned as is", func(t *testing.T) {
		stored := []domain.Checklist{{ID: "vet-visit", Items: []domain.ChecklistItem{{ID: "records", Completed: true}}}}
		repo := &mocks.MockChecklistRepository{}
		repo.On("List", ctx).Return(stored, nil).Once()

		checklists, err := newTestComplianceUseCase(repo).Checklists(ctx)
		require.NoError(t, err)
		assert.Equal(t, stored, checklists)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mocks.MockChecklistRepository{}
		repo.On("List", ctx).Return(nil, errors.New("disk full")).Once()

		_, err := newTestComplianceUseCase(repo).Checklists(ctx)
		require.EqualError(t, err, "disk full")
	})
}

func TestComplianceUseCase_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("first completion persists the daily checklist", func(t *testing.T) {
		repo := &mocks.MockChecklistRepository{}
		repo.On("Get", ctx, "daily-hygiene").Return(nil, domain.ErrChecklistNotFound).Once()
		repo.On("Save", ctx, mock.MatchedBy(func(c domain.Checklist) bool {
			return c.ID == "daily-hygiene" && c.Items[1].Completed && c.LastUpdated.Equal(complianceNow)
		})).Return(nil).Once()

		checklist, err := newTestComplianceUseCase(repo).Complete(ctx, "daily-hygiene", "water-quality")
		require.NoError(t, err)
		assert.Equal(t, 25, checklist.CompletionRate())
		require.NotNil(t, checklist.Items[1].CompletedAt)
		assert.True(t, complianceNow.Equal(*checklist.Items[1].CompletedAt))
		repo.AssertExpectations(t)
	})

	t.Run("stored checklist is updated", func(t *testing.T) {
		stored := &domain.Checklist{ID: "vet-visit", Items: []domain.ChecklistItem{
			{ID: "records", Completed: true},
			{ID: "samples"},
		}}
		repo := &mocks.MockChecklistRepository{}
		repo.On("Get", ctx, "vet-visit").Return(stored, nil).Once()
		repo.On("Save", ctx, mock.AnythingOfType("domain.Checklist")).Return(nil).Once()

		checklist, err := newTestComplianceUseCase(repo).Complete(ctx, "vet-visit", "samples")
		require.NoError(t, err)
		assert.Equal(t, 100, checklist.CompletionRate())
		repo.AssertExpectations(t)
	})

	t.Run("unknown checklist", func(t *testing.T) {
		repo := &mocks.MockChecklistRepository{}
		repo.On("Get", ctx, "weekly").Return(nil, domain.ErrChecklistNotFound).Once()

		_, err := newTestComplianceUseCase(repo).Complete(ctx, "weekly", "feeding-areas")
		require.ErrorIs(t, err, domain.ErrChecklistNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo := &mocks.MockChecklistRepository{}
		repo.On("Get", ctx, "daily-hygiene").Return(nil, domain.ErrChecklistNotFound).Once()

		_, err := newTestComplianceUseCase(repo).Complete(ctx, "daily-hygiene", "roof")
		require.ErrorIs(t, err, domain.ErrChecklistItemNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

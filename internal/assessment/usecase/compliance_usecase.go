package usecase

import (
	"context"
	"time"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
)

type complianceUseCase struct {
	repo ChecklistRepository
	now  func() time.Time
}

// NewComplianceUseCase creates a ComplianceUseCase backed by repo.
func NewComplianceUseCase(repo ChecklistRepository) ComplianceUseCase {
	return &complianceUseCase{repo: repo, now: time.Now}
}

func (c *complianceUseCase) Checklists(ctx context.Context) ([]domain.Checklist, error) {
	checklists, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(checklists) == 0 {
		return []domain.Checklist{domain.DailyHygieneChecklist(c.now().UTC())}, nil
	}
	return checklists, nil
}

func (c *complianceUseCase) Complete(ctx context.Context, checklistID, itemID string) (*domain.Checklist, error) {
	now := c.now().UTC()

	checklist, err := c.repo.Get(ctx, checklistID)
	if apperrors.Is(err, domain.ErrChecklistNotFound) {
		builtin := domain.DailyHygieneChecklist(now)
		if checklistID != builtin.ID {
			return nil, err
		}
		checklist, err = &builtin, nil
	}
	if err != nil {
		return nil, err
	}

	if !checklist.Complete(itemID, now) {
		return nil, domain.ErrChecklistItemNotFound
	}
	if err := c.repo.Save(ctx, *checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}

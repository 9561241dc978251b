// Package usecase implements the assessment workflows: scoring answers with the
// domain scorers and keeping a local history of saved results.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
)

// AssessmentRepository stores saved assessments, most recent first.
type AssessmentRepository interface {
	Save(ctx context.Context, assessment *domain.Assessment) error
	List(ctx context.Context) ([]*domain.Assessment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UseCase scores checker answers and manages assessment history.
type UseCase interface {
	// CheckRisk scores the six-question risk checker. The result is saved when input.Save is set.
	CheckRisk(ctx context.Context, input RiskInput) (*RiskReport, error)

	// CheckBiosecurity scores the biosecurity checklist. The result is saved when input.Save is set.
	CheckBiosecurity(ctx context.Context, input BiosecurityInput) (*BiosecurityReport, error)

	// List returns saved assessments, most recent first.
	List(ctx context.Context) ([]*domain.Assessment, error)

	// Get returns one saved assessment.
	Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)

	// Delete removes a saved assessment.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChecklistRepository stores compliance checklists in creation order. Save inserts a new
// checklist or replaces the one with the same id.
type ChecklistRepository interface {
	List(ctx context.Context) ([]domain.Checklist, error)
	Get(ctx context.Context, id string) (*domain.Checklist, error)
	Save(ctx context.Context, checklist domain.Checklist) error
}

// ComplianceUseCase tracks completion of the compliance checklists.
type ComplianceUseCase interface {
	// Checklists returns the stored checklists. An empty store yields the daily hygiene
	// checklist, which is persisted the first time one of its items is completed.
	Checklists(ctx context.Context) ([]domain.Checklist, error)

	// Complete marks one item done and returns the updated checklist.
	Complete(ctx context.Context, checklistID, itemID string) (*domain.Checklist, error)
}

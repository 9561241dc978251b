package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
)

// MemoryAssessmentRepository keeps assessments in process memory, most recent first.
type MemoryAssessmentRepository struct {
	mu          sync.RWMutex
	assessments []*domain.Assessment
}

// NewMemoryAssessmentRepository creates an empty in-memory repository.
func NewMemoryAssessmentRepository() *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{}
}

// Save prepends a copy of the assessment.
func (r *MemoryAssessmentRepository) Save(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assessments = append([]*domain.Assessment{clone(a)}, r.assessments...)
	return nil
}

// List returns copies of all assessments.
func (r *MemoryAssessmentRepository) List(_ context.Context) ([]*domain.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		out = append(out, clone(a))
	}
	return out, nil
}

// Get returns a copy of one assessment.
func (r *MemoryAssessmentRepository) Get(_ context.Context, id uuid.UUID) (*domain.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.assessments {
		if a.ID == id {
			return clone(a), nil
		}
	}
	return nil, domain.ErrAssessmentNotFound
}

// Delete removes one assessment.
func (r *MemoryAssessmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.assessments {
		if a.ID == id {
			r.assessments = append(r.assessments[:i], r.assessments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssessmentNotFound
}

func clone(a *domain.Assessment) *domain.Assessment {
	cp := *a
	cp.Answers = make(map[string]int, len(a.Answers))
	for k, v := range a.Answers {
		cp.Answers[k] = v
	}
	return &cp
}

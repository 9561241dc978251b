package repository

import (
	"context"
	"sync"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
)

// MemoryChecklistRepository keeps checklists in process memory in creation order.
type MemoryChecklistRepository struct {
	mu         sync.RWMutex
	checklists []domain.Checklist
}

// NewMemoryChecklistRepository creates an empty in-memory repository.
func NewMemoryChecklistRepository() *MemoryChecklistRepository {
	return &MemoryChecklistRepository{}
}

// Save stores a copy, replacing a checklist with the same id in place.
func (r *MemoryChecklistRepository) Save(_ context.Context, c domain.Checklist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.checklists {
		if r.checklists[i].ID == c.ID {
			r.checklists[i] = cloneChecklist(c)
			return nil
		}
	}
	r.checklists = append(r.checklists, cloneChecklist(c))
	return nil
}

// List returns copies of all checklists.
func (r *MemoryChecklistRepository) List(_ context.Context) ([]domain.Checklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Checklist, 0, len(r.checklists))
	for _, c := range r.checklists {
		out = append(out, cloneChecklist(c))
	}
	return out, nil
}

// Get returns a copy of one checklist.
func (r *MemoryChecklistRepository) Get(_ context.Context, id string) (*domain.Checklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.checklists {
		if c.ID == id {
			cp := cloneChecklist(c)
			return &cp, nil
		}
	}
	return nil, domain.ErrChecklistNotFound
}

func cloneChecklist(c domain.Checklist) domain.Checklist {
	c.Items = append([]domain.ChecklistItem(nil), c.Items...)
	return c
}

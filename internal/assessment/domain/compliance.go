package domain

import (
	"time"

	"github.com/farmrakshaa/farm-guardian/internal/errors"
)

var (
	// ErrChecklistNotFound indicates the requested checklist does not exist.
	ErrChecklistNotFound = errors.Wrap(errors.ErrNotFound, "checklist not found")

	// ErrChecklistItemNotFound indicates the checklist has no item with the requested id.
	ErrChecklistItemNotFound = errors.Wrap(errors.ErrNotFound, "checklist item not found")
)

// ChecklistItem is one task on a compliance checklist.
type ChecklistItem struct {
	ID          string     `json:"id"`
	Title       Text       `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"timestamp,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Checklist is a named group of compliance tasks.
type Checklist struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Items       []ChecklistItem `json:"items"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// CompletionRate is the rounded share of completed items; an empty list is 0.
func (c Checklist) CompletionRate() int {
	done := 0
	for _, item := range c.Items {
		if item.Completed {
			done++
		}
	}
	return Round(Percentage(done, len(c.Items)))
}

// Complete marks an item done at the given time. It reports false for an unknown id.
func (c *Checklist) Complete(itemID string, at time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ID != itemID {
			continue
		}
		c.Items[i].Completed = true
		c.Items[i].CompletedAt = &at
		c.LastUpdated = at
		return true
	}
	return false
}

// DailyHygieneChecklist returns the built-in daily checklist with nothing completed.
func DailyHygieneChecklist(now time.Time) Checklist {
	return Checklist{
		ID:       "daily-hygiene",
		Name:     "Daily Hygiene Checklist",
		Category: "hygiene",
		Items: []ChecklistItem{
			{ID: "feeding-areas", Title: Text{
				"Clean and disinfect feeding areas",
				"Feeding areas saaf aur disinfect karein",
			}},
			{ID: "water-quality", Title: Text{
				"Check water quality and cleanliness",
				"Paani ki quality aur safai check karein",
			}},
			{ID: "remove-sick", Title: Text{
				"Remove dead or sick animals immediately",
				"Mare ya bimar jaanwaron ko turant hata dein",
			}},
			{ID: "clean-boots", Title: Text{
				"Clean boots before entering farm areas",
				"Farm areas mein jaane se pehle boots saaf karein",
			}},
		},
		LastUpdated: now,
	}
}

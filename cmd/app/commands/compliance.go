package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
)

type checklistOutput struct {
	ID             string                           `json:"id"`
	Name           string                           `json:"name"`
	Category       string                           `json:"category"`
	CompletionRate int                              `json:"completionRate"`
	Items          []assessmentDomain.ChecklistItem `json:"items"`
}

// RunCompliance prints the completion of every stored checklist. When complete is set, as
// "checklist/item", that item is marked done first.
func RunCompliance(
	ctx context.Context,
	useCase assessmentUseCase.ComplianceUseCase,
	w io.Writer,
	complete string,
	lang string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	language, err := parseLanguage(lang)
	if err != nil {
		return err
	}

	if complete != "" {
		if err := completeItem(ctx, useCase, complete); err != nil {
			return err
		}
	}

	checklists, err := useCase.Checklists(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checklists: %w", err)
	}

	if format == FormatJSON {
		out := make([]checklistOutput, 0, len(checklists))
		for _, c := range checklists {
			out = append(out, checklistOutput{
				ID:             c.ID,
				Name:           c.Name,
				Category:       c.Category,
				CompletionRate: c.CompletionRate(),
				Items:          c.Items,
			})
		}
		return writeJSON(w, out)
	}

	for _, c := range checklists {
		_, _ = fmt.Fprintf(w, "%s (%s): %d%% complete\n", c.Name, c.ID, c.CompletionRate())
		for _, item := range c.Items {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			_, _ = fmt.Fprintf(w, "  [%s] %s  %s\n", mark, item.ID, item.Title.In(language))
		}
	}
	return nil
}

func completeItem(ctx context.Context, useCase assessmentUseCase.ComplianceUseCase, ref string) error {
	checklistID, itemID, ok := strings.Cut(ref, "/")
	if !ok || checklistID == "" || itemID == "" {
		return fmt.Errorf("invalid item reference %q (expected checklist/item)", ref)
	}

	_, err := useCase.Complete(ctx, checklistID, itemID)
	switch {
	case errors.Is(err, assessmentDomain.ErrChecklistNotFound):
		return fmt.Errorf("checklist %s not found", checklistID)
	case errors.Is(err, assessmentDomain.ErrChecklistItemNotFound):
		return fmt.Errorf("checklist %s has no item %s", checklistID, itemID)
	case err != nil:
		return fmt.Errorf("failed to complete item: %w", err)
	}
	return nil
}

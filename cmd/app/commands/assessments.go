package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
)

// RunListAssessments prints the saved assessment history, most recent first.
func RunListAssessments(
	ctx context.Context,
	useCase assessmentUseCase.UseCase,
	w io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	assessments, err := useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list assessments: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(w, assessments)
	}

	if len(assessments) == 0 {
		_, _ = fmt.Fprintln(w, "No saved assessments")
		return nil
	}
	for _, a := range assessments {
		_, _ = fmt.Fprintf(w, "%s  %s  %-11s  %-20s  %3d%%  %s\n",
			a.ID, a.Date.Format("2006-01-02 15:04"), a.Kind, a.FarmName, a.Percentage, a.Level)
	}
	return nil
}

// RunShowAssessment prints one saved assessment with its answers.
func RunShowAssessment(
	ctx context.Context,
	useCase assessmentUseCase.UseCase,
	w io.Writer,
	id string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid assessment id: %w", err)
	}

	a, err := useCase.Get(ctx, assessmentID)
	if err != nil {
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(w, a)
	}

	_, _ = fmt.Fprintf(w, "ID:         %s\n", a.ID)
	_, _ = fmt.Fprintf(w, "Kind:       %s\n", a.Kind)
	_, _ = fmt.Fprintf(w, "Farm:       %s\n", a.FarmName)
	_, _ = fmt.Fprintf(w, "Date:       %s\n", a.Date.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "Score:      %d (%d%%)\n", a.Score, a.Percentage)
	_, _ = fmt.Fprintf(w, "Level:      %s\n", a.Level)
	_, _ = fmt.Fprintln(w, "Answers:")
	for _, key := range sortedKeys(a.Answers) {
		_, _ = fmt.Fprintf(w, "  %s = %d\n", key, a.Answers[key])
	}
	return nil
}

// RunDeleteAssessment removes one saved assessment.
func RunDeleteAssessment(
	ctx context.Context,
	useCase assessmentUseCase.UseCase,
	logger *slog.Logger,
	w io.Writer,
	id string,
) error {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid assessment id: %w", err)
	}

	if err := useCase.Delete(ctx, assessmentID); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	logger.Info("assessment deleted", slog.String("id", assessmentID.String()))
	_, _ = fmt.Fprintf(w, "Deleted assessment %s\n", assessmentID)
	return nil
}

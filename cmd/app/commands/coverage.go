package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	userUseCase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// RunVaccinationCoverage loads a farmer's profile and prints per-species vaccination
// coverage with the herd-wide total.
func RunVaccinationCoverage(
	ctx context.Context,
	useCase userUseCase.UseCase,
	w io.Writer,
	userID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	farmData, err := useCase.GetFarmData(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load farm data: %w", err)
	}

	coverage := assessmentDomain.VaccinationCoverage(*farmData)
	if format == FormatJSON {
		return writeJSON(w, coverage)
	}

	_, _ = fmt.Fprintf(w, "Farm size: %.2f acres\n", farmData.TotalAcres)
	for _, s := range coverage.Species {
		_, _ = fmt.Fprintf(w, "%-8s %4d/%-4d vaccinated (%3d%%), %d remaining\n",
			s.Species, s.Vaccinated, s.Total, s.Percentage, s.Remaining)
	}
	_, _ = fmt.Fprintf(w, "Overall: %d/%d vaccinated (%d%%)\n",
		coverage.Vaccinated, coverage.Total, coverage.Percentage)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userUseCase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// RunImportLegacyUsers copies accounts from a legacy store into the configured SQL store.
// Already imported accounts are skipped; any other failure leaves the target unchanged.
func RunImportLegacyUsers(
	ctx context.Context,
	useCase userUseCase.ImportUseCase,
	source userUseCase.UserSource,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result, err := useCase.Import(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}

	logger.Info("legacy users imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)

	if format == FormatJSON {
		return writeJSON(w, map[string]int{
			"imported": result.Imported,
			"skipped":  result.Skipped,
		})
	}

	_, _ = fmt.Fprintf(w, "Imported %d users, skipped %d already present\n", result.Imported, result.Skipped)
	return nil
}

// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/farmrakshaa/farm-guardian/internal/app"
	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

func validateFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseLanguage(lang string) (assessmentDomain.Language, error) {
	switch assessmentDomain.Language(lang) {
	case assessmentDomain.LanguageEnglish, assessmentDomain.LanguageHindi:
		return assessmentDomain.Language(lang), nil
	default:
		return "", fmt.Errorf("invalid language: %s (valid options: en, hi)", lang)
	}
}

// ParseAnswers converts --answer id=score pairs into scores.
func ParseAnswers(raw map[string]string) (map[string]int, error) {
	answers := make(map[string]int, len(raw))
	for id, value := range raw {
		score, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("answer %s: %q is not a whole number", id, value)
		}
		answers[strings.TrimSpace(id)] = score
	}
	return answers, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

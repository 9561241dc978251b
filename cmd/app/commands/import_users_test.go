package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
	userUseCase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

type stubImportUseCase struct {
	result *userUseCase.ImportResult
	err    error
	source userUseCase.UserSource
}

func (s *stubImportUseCase) Import(_ context.Context, source userUseCase.UserSource) (*userUseCase.ImportResult, error) {
	s.source = source
	return s.result, s.err
}

type staticUserSource []*userDomain.User

func (s staticUserSource) All(context.Context) ([]*userDomain.User, error) {
	return s, nil
}

func TestRunImportLegacyUsers(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := staticUserSource{}

	t.Run("text output", func(t *testing.T) {
		useCase := &stubImportUseCase{result: &userUseCase.ImportResult{Imported: 3, Skipped: 1}}

		var out bytes.Buffer
		require.NoError(t, RunImportLegacyUsers(ctx, useCase, source, logger, &out, FormatText))
		assert.Equal(t, "Imported 3 users, skipped 1 already present\n", out.String())
		assert.NotNil(t, useCase.source)
	})

	t.Run("json output", func(t *testing.T) {
		useCase := &stubImportUseCase{result: &userUseCase.ImportResult{Imported: 2}}

		var out bytes.Buffer
		require.NoError(t, RunImportLegacyUsers(ctx, useCase, source, logger, &out, FormatJSON))

		var got map[string]int
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, map[string]int{"imported": 2, "skipped": 0}, got)
	})

	t.Run("import failure", func(t *testing.T) {
		useCase := &stubImportUseCase{err: errors.New("duplicate key")}

		err := RunImportLegacyUsers(ctx, useCase, source, logger, io.Discard, FormatText)
		require.EqualError(t, err, "failed to import users: duplicate key")
	})

	t.Run("invalid format", func(t *testing.T) {
		err := RunImportLegacyUsers(ctx, &stubImportUseCase{}, source, logger, io.Discard, "xml")
		require.ErrorContains(t, err, "invalid format")
	})
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmrakshaa/farm-guardian/internal/database"
	"github.com/farmrakshaa/farm-guardian/internal/testutil"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
	"github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

type sqlBackend struct {
	name  string
	setup func(t *testing.T) *sql.DB
	repo  func(db *sql.DB) usecase.UserRepository
}

func sqlBackends() []sqlBackend {
	return []sqlBackend{
		{
			name:  "postgresql",
			setup: testutil.SetupPostgresDB,
			repo:  func(db *sql.DB) usecase.UserRepository { return NewPostgreSQLUserRepository(db) },
		},
		{
			name:  "mysql",
			setup: testutil.SetupMySQLDB,
			repo:  func(db *sql.DB) usecase.UserRepository { return NewMySQLUserRepository(db) },
		},
	}
}

type staticSource []*domain.User

func (s staticSource) All(context.Context) ([]*domain.User, error) {
	return s, nil
}

func newIntegrationUser(email, nationalID string) *domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Integration Farmer",
		Email:        email,
		Phone:        "9876543210",
		Address:      "7 Canal Road",
		NationalID:   nationalID,
		Village:      "Khanna",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSQLUserRepository_Integration(t *testing.T) {
	for _, backend := range sqlBackends() {
		t.Run(backend.name, func(t *testing.T) {
			db := backend.setup(t)
			defer testutil.TeardownDB(t, db)
			ctx := context.Background()
			repo := backend.repo(db)

			user := newIntegrationUser("kiran@example.com", "123412341234")
			require.NoError(t, repo.Create(ctx, user))

			got, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.Email, got.Email)
			assert.Empty(t, got.PasswordHash)
			assert.Equal(t, domain.FarmData{}, got.FarmData)

			creds, err := repo.GetCredentialsByEmail(ctx, "kiran@example.com")
			require.NoError(t, err)
			assert.Equal(t, user.PasswordHash, creds.PasswordHash)

			dupEmail := newIntegrationUser("kiran@example.com", "999988887777")
			assert.ErrorIs(t, repo.Create(ctx, dupEmail), domain.ErrDuplicateEmail)

			dupAadhaar := newIntegrationUser("other@example.com", "123412341234")
			assert.ErrorIs(t, repo.Create(ctx, dupAadhaar), domain.ErrDuplicateNationalID)

			farmData := domain.FarmData{
				TotalAcres: 4.5,
				Livestock: domain.Livestock{
					Goats: domain.LivestockCount{Total: 12, Vaccinated: 9},
				},
			}
			require.NoError(t, repo.UpdateFarmData(ctx, user.ID, farmData))
			got, err = repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, farmData, got.FarmData)

			missing := uuid.Must(uuid.NewV7())
			assert.ErrorIs(t, repo.UpdateFarmData(ctx, missing, farmData), domain.ErrUserNotFound)
			_, err = repo.GetByID(ctx, missing)
			assert.ErrorIs(t, err, domain.ErrUserNotFound)
		})
	}
}

func TestSQLImport_Integration(t *testing.T) {
	for _, backend := range sqlBackends() {
		t.Run(backend.name, func(t *testing.T) {
			db := backend.setup(t)
			defer testutil.TeardownDB(t, db)
			ctx := context.Background()
			repo := backend.repo(db)
			importer := usecase.NewImportUseCase(database.NewTxManager(db), repo)

			first := newIntegrationUser("first@example.com", "100020003000")
			second := newIntegrationUser("second@example.com", "400050006000")

			result, err := importer.Import(ctx, staticSource{first, second})
			require.NoError(t, err)
			assert.Equal(t, &usecase.ImportResult{Imported: 2}, result)

			result, err = importer.Import(ctx, staticSource{first, second})
			require.NoError(t, err)
			assert.Equal(t, &usecase.ImportResult{Skipped: 2}, result)

			fresh := newIntegrationUser("fresh@example.com", "700080009000")
			clash := newIntegrationUser("first@example.com", "111111111111")
			_, err = importer.Import(ctx, staticSource{fresh, clash})
			require.ErrorIs(t, err, domain.ErrDuplicateEmail)

			_, err = repo.GetByID(ctx, fresh.ID)
			assert.ErrorIs(t, err, domain.ErrUserNotFound, "a failed import must leave no partial rows")
		})
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

var userColumns = []string{
	"id", "name", "email", "phone", "address", "national_id", "village", "role", "farm_data",
	"created_at", "updated_at",
}

func newPostgreSQLRepoWithMock(t *testing.T) (*PostgreSQLUserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgreSQLUserRepository(db), mock, db
}

func testUser() *domain.User {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Asha",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		Address:      "12 Mill Road",
		NationalID:   "345612349012",
		Village:      "Rampur",
		PasswordHash: "$argon2id$hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,.*farm_data,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,.*\$12\)$`

	t.Run("Success", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		user := testUser()
		mock.ExpectExec(q).
			WithArgs(
				user.ID, "Asha", "asha@example.com", "9876543210", "12 Mill Road", "345612349012",
				"Rampur", "$argon2id$hash", "user", sqlmock.AnyArg(), user.CreatedAt, user.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, testUser())
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("DuplicateNationalID", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(&pq.Error{Code: "23505", Constraint: "users_national_id_key"})

		err := repo.Create(ctx, testUser())
		assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)
	})

	t.Run("DuplicateFromMessage", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(
			errors.New(`pq: duplicate key value violates unique constraint "users_national_id_key"`),
		)

		err := repo.Create(ctx, testUser())
		assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)
	})

	t.Run("OtherError", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(&pq.Error{Code: "23502", Column: "name"})

		err := repo.Create(ctx, testUser())
		require.Error(t, err)
		assert.False(t, apperrors.Is(err, apperrors.ErrConflict))
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestPostgreSQLUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^SELECT\s+id,\s*name,.*updated_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("Success", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		user := testUser()
		rows := sqlmock.NewRows(userColumns).AddRow(
			user.ID.String(), user.Name, user.Email, user.Phone, user.Address, user.NationalID,
			user.Village, "user", []byte(`{"totalAcres":3.5,"livestock":{"cattle":{"total":10,"vaccinated":6}}}`),
			user.CreatedAt, user.UpdatedAt,
		)
		mock.ExpectQuery(q).WithArgs(user.ID).WillReturnRows(rows)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Asha", got.Name)
		assert.Equal(t, domain.RoleUser, got.Role)
		assert.Empty(t, got.PasswordHash)
		assert.Equal(t, 3.5, got.FarmData.TotalAcres)
		assert.Equal(t, domain.LivestockCount{Total: 10, Vaccinated: 6}, got.FarmData.Livestock.Cattle)
		assert.Equal(t, domain.LivestockCount{}, got.FarmData.Livestock.Pigs)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(q).WithArgs(id).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_GetCredentialsByEmail(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^SELECT\s+id,.*password_hash\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`

	t.Run("Success", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		user := testUser()
		rows := sqlmock.NewRows(append(userColumns, "password_hash")).AddRow(
			user.ID.String(), user.Name, user.Email, user.Phone, user.Address, user.NationalID,
			user.Village, "admin", []byte(`{}`), user.CreatedAt, user.UpdatedAt, "$2a$10$legacy",
		)
		mock.ExpectQuery(q).WithArgs("asha@example.com").WillReturnRows(rows)

		got, err := repo.GetCredentialsByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$legacy", got.PasswordHash)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCredentialsByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_UpdateFarmData(t *testing.T) {
	ctx := context.Background()
	q := `^UPDATE\s+users\s+SET\s+farm_data\s*=\s*\$1,\s*updated_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3$`
	id := uuid.Must(uuid.NewV7())
	farmData := domain.FarmData{Livestock: domain.Livestock{Cattle: domain.LivestockCount{Total: 10, Vaccinated: 6}}}

	t.Run("Success", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).
			WithArgs(
				`{"totalAcres":0,"livestock":{"pigs":{"total":0,"vaccinated":0},"poultry":{"total":0,"vaccinated":0},"cattle":{"total":10,"vaccinated":6},"goats":{"total":0,"vaccinated":0}}}`,
				sqlmock.AnyArg(),
				id,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateFarmData(ctx, id, farmData))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, db := newPostgreSQLRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateFarmData(ctx, id, farmData)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_UpdatePasswordHash(t *testing.T) {
	repo, mock, db := newPostgreSQLRepoWithMock(t)
	defer db.Close()

	id := uuid.Must(uuid.NewV7())
	mock.ExpectExec(`^UPDATE\s+users\s+SET\s+password_hash\s*=\s*\$1`).
		WithArgs("$argon2id$new", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePasswordHash(context.Background(), id, "$argon2id$new"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

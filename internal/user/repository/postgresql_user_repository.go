package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/farmrakshaa/farm-guardian/internal/database"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	// lib/pq encodes []byte as bytea, so JSON goes over the wire as text.
	farmData, err := marshalFarmData(user.FarmData)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, phone, address, national_id, village, password_hash, role, farm_data, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.NationalID,
		user.Village,
		user.PasswordHash,
		string(user.Role),
		string(farmData),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if key, ok := postgreSQLUniqueViolation(err); ok {
			return duplicateError(key)
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID without the password hash
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, phone, address, national_id, village, role, farm_data, created_at, updated_at
			  FROM users WHERE id = $1`

	user, err := r.scan(querier.QueryRowContext(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetCredentialsByEmail retrieves a user by email including the password hash
func (r *PostgreSQLUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, phone, address, national_id, village, role, farm_data, created_at, updated_at, password_hash
			  FROM users WHERE email = $1`

	user, err := r.scan(querier.QueryRowContext(ctx, query, email), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}
	return user, nil
}

// UpdatePasswordHash replaces the stored password hash
func (r *PostgreSQLUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, hash, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password hash")
	}
	return checkAffected(result)
}

// UpdateFarmData replaces the farm profile of a user
func (r *PostgreSQLUserRepository) UpdateFarmData(ctx context.Context, id uuid.UUID, farmData domain.FarmData) error {
	querier := database.GetTx(ctx, r.db)

	data, err := marshalFarmData(farmData)
	if err != nil {
		return err
	}

	query := `UPDATE users SET farm_data = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, string(data), time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update farm data")
	}
	return checkAffected(result)
}

func (r *PostgreSQLUserRepository) scan(row rowScanner, withHash bool) (*domain.User, error) {
	var (
		user     domain.User
		role     string
		farmData []byte
	)
	dest := []any{
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.NationalID,
		&user.Village, &role, &farmData, &user.CreatedAt, &user.UpdatedAt,
	}
	if withHash {
		dest = append(dest, &user.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	fd, err := unmarshalFarmData(farmData)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.FarmData = fd
	return &user, nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// postgreSQLUniqueViolation reports whether err is a unique violation and on which constraint.
func postgreSQLUniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != pgUniqueViolation {
			return "", false
		}
		return pqErr.Constraint, true
	}

	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "duplicate key") && !strings.Contains(errMsg, "unique constraint") {
		return "", false
	}
	if strings.Contains(errMsg, nationalIDUniqueKey) {
		return nationalIDUniqueKey, true
	}
	return emailUniqueKey, true
}

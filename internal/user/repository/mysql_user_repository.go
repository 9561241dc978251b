package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/database"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLUserRepository handles user persistence for MySQL. IDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	farmData, err := marshalFarmData(user.FarmData)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, phone, address, national_id, village, password_hash, role, farm_data, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.NationalID,
		user.Village,
		user.PasswordHash,
		string(user.Role),
		farmData,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if key, ok := mySQLUniqueViolation(err); ok {
			return duplicateError(key)
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID without the password hash
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, name, email, phone, address, national_id, village, role, farm_data, created_at, updated_at
			  FROM users WHERE id = ?`

	user, err := r.scan(querier.QueryRowContext(ctx, query, uuidBytes), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetCredentialsByEmail retrieves a user by email including the password hash
func (r *MySQLUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, phone, address, national_id, village, role, farm_data, created_at, updated_at, password_hash
			  FROM users WHERE email = ?`

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
func (r *MySQLUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`
	return r.update(ctx, id, query, "failed to update password hash", hash, time.Now().UTC())
}

// UpdateFarmData replaces the farm profile of a user
func (r *MySQLUserRepository) UpdateFarmData(ctx context.Context, id uuid.UUID, farmData domain.FarmData) error {
	data, err := marshalFarmData(farmData)
	if err != nil {
		return err
	}

	query := `UPDATE users SET farm_data = ?, updated_at = ? WHERE id = ?`
	return r.update(ctx, id, query, "failed to update farm data", data, time.Now().UTC())
}

// update runs a single-row UPDATE whose last placeholder is the id. MySQL reports
// zero affected rows when nothing changed, so a zero count is confirmed with a lookup.
func (r *MySQLUserRepository) update(ctx context.Context, id uuid.UUID, query, msg string, args ...any) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, append(args, uuidBytes)...)
	if err != nil {
		return apperrors.Wrap(err, msg)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows > 0 {
		return nil
	}

	var exists int
	err = querier.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, uuidBytes).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return apperrors.Wrap(err, msg)
	}
	return nil
}

func (r *MySQLUserRepository) scan(row rowScanner, withHash bool) (*domain.User, error) {
	var (
		user     domain.User
		idBytes  []byte
		role     string
		farmData []byte
	)
	dest := []any{
		&idBytes, &user.Name, &user.Email, &user.Phone, &user.Address, &user.NationalID,
		&user.Village, &role, &farmData, &user.CreatedAt, &user.UpdatedAt,
	}
	if withHash {
		dest = append(dest, &user.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	fd, err := unmarshalFarmData(farmData)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.FarmData = fd
	return &user, nil
}

// mySQLUniqueViolation reports whether err is ER_DUP_ENTRY and on which key.
func mySQLUniqueViolation(err error) (string, bool) {
	var myErr *mysql.MySQLError
	var msg string
	if errors.As(err, &myErr) {
		if myErr.Number != mysqlDuplicateEntry {
			return "", false
		}
		msg = myErr.Message
	} else {
		msg = strings.ToLower(err.Error())
		if !strings.Contains(msg, "duplicate entry") {
			return "", false
		}
	}

	if strings.Contains(msg, nationalIDUniqueKey) {
		return nationalIDUniqueKey, true
	}
	return emailUniqueKey, true
}

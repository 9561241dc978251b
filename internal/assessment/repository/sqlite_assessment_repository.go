// Package repository provides the CLI's local storage for assessment history and
// compliance checklists: a SQLite file, plus in-memory stores for tests and ephemeral
// sessions.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		kind       TEXT NOT NULL,
		farm_name  TEXT NOT NULL,
		answers    TEXT NOT NULL,
		score      INTEGER NOT NULL,
		percentage INTEGER NOT NULL,
		level      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS checklists (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		name         TEXT NOT NULL,
		category     TEXT NOT NULL,
		items        TEXT NOT NULL,
		last_updated TEXT NOT NULL
	)`,
}

// OpenSQLite opens (or creates) the local database at path and ensures its schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open assessment database")
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, apperrors.Wrap(err, "failed to create local schema")
		}
	}
	return db, nil
}

// SQLiteAssessmentRepository stores assessments in SQLite. Insertion order is kept by
// an autoincrement sequence so listing is most recent first.
type SQLiteAssessmentRepository struct {
	db *sql.DB
}

// NewSQLiteAssessmentRepository creates a repository over a database prepared by OpenSQLite.
func NewSQLiteAssessmentRepository(db *sql.DB) *SQLiteAssessmentRepository {
	return &SQLiteAssessmentRepository{db: db}
}

// Save inserts an assessment.
func (r *SQLiteAssessmentRepository) Save(ctx context.Context, a *domain.Assessment) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal assessment answers")
	}

	query := `INSERT INTO assessments (id, kind, farm_name, answers, score, percentage, level, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(
		ctx,
		query,
		a.ID.String(),
		string(a.Kind),
		a.FarmName,
		string(answers),
		a.Score,
		a.Percentage,
		a.Level,
		a.Date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save assessment")
	}
	return nil
}

// List returns all assessments, most recent first.
func (r *SQLiteAssessmentRepository) List(ctx context.Context) ([]*domain.Assessment, error) {
	query := `SELECT id, kind, farm_name, answers, score, percentage, level, created_at
			  FROM assessments ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list assessments")
	}
	defer func() {
		_ = rows.Close()
	}()

	assessments := make([]*domain.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate assessments")
	}
	return assessments, nil
}

// Get returns one assessment by id.
func (r *SQLiteAssessmentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	query := `SELECT id, kind, farm_name, answers, score, percentage, level, created_at
			  FROM assessments WHERE id = ?`

	a, err := scanAssessment(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// Delete removes an assessment by id.
func (r *SQLiteAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete assessment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*domain.Assessment, error) {
	var (
		a         domain.Assessment
		id        string
		kind      string
		answers   string
		createdAt string
	)
	err := row.Scan(&id, &kind, &a.FarmName, &answers, &a.Score, &a.Percentage, &a.Level, &createdAt)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan assessment")
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse assessment id")
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal assessment answers")
	}
	if a.Date, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse assessment date")
	}
	a.Kind = domain.Kind(kind)
	return &a, nil
}

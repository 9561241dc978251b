package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
)

// SQLiteChecklistRepository stores compliance checklists next to the assessment history.
// Items are kept as a JSON column since they are always read and written together.
type SQLiteChecklistRepository struct {
	db *sql.DB
}

// NewSQLiteChecklistRepository creates a repository over a database prepared by OpenSQLite.
func NewSQLiteChecklistRepository(db *sql.DB) *SQLiteChecklistRepository {
	return &SQLiteChecklistRepository{db: db}
}

// Save inserts the checklist or replaces the stored one with the same id, keeping its
// position in the list.
func (r *SQLiteChecklistRepository) Save(ctx context.Context, c domain.Checklist) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal checklist items")
	}

	query := `INSERT INTO checklists (id, name, category, items, last_updated)
			  VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				category = excluded.category,
				items = excluded.items,
				last_updated = excluded.last_updated`

	_, err = r.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Name,
		c.Category,
		string(items),
		c.LastUpdated.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save checklist")
	}
	return nil
}

// List returns every checklist in creation order.
func (r *SQLiteChecklistRepository) List(ctx context.Context) ([]domain.Checklist, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, category, items, last_updated FROM checklists ORDER BY seq`,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list checklists")
	}
	defer func() {
		_ = rows.Close()
	}()

	checklists := make([]domain.Checklist, 0)
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate checklists")
	}
	return checklists, nil
}

// Get returns one checklist by id.
func (r *SQLiteChecklistRepository) Get(ctx context.Context, id string) (*domain.Checklist, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, category, items, last_updated FROM checklists WHERE id = ?`,
		id,
	)
	c, err := scanChecklist(row)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChecklistNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanChecklist(row rowScanner) (*domain.Checklist, error) {
	var (
		c           domain.Checklist
		items       string
		lastUpdated string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Category, &items, &lastUpdated); err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan checklist")
	}

	if err := json.Unmarshal([]byte(items), &c.Items); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal checklist items")
	}
	var err error
	if c.LastUpdated, err = time.Parse(time.RFC3339Nano, lastUpdated); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse checklist update time")
	}
	return &c, nil
}

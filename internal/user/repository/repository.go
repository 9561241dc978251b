// Package repository provides persistence implementations for the user record.
// PostgreSQL and MySQL keep the farm profile in a JSON column; MongoDB embeds it
// in the user document.
package repository

import (
	"encoding/json"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// Unique constraint names of the SQL schemas. MongoDB duplicate-key errors are mapped
// onto the same names.
const (
	emailUniqueKey      = "users_email_key"
	nationalIDUniqueKey = "users_national_id_key"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func marshalFarmData(farmData domain.FarmData) ([]byte, error) {
	data, err := json.Marshal(farmData)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal farm data")
	}
	return data, nil
}

func unmarshalFarmData(data []byte) (domain.FarmData, error) {
	var farmData domain.FarmData
	if len(data) == 0 {
		return farmData, nil
	}
	if err := json.Unmarshal(data, &farmData); err != nil {
		return farmData, apperrors.Wrap(err, "failed to unmarshal farm data")
	}
	return farmData, nil
}

// duplicateError maps a unique violation on the given key to a domain error.
// Email is the fallback since it is the first key checked at sign-up.
func duplicateError(key string) error {
	if key == nationalIDUniqueKey {
		return domain.ErrDuplicateNationalID
	}
	return domain.ErrDuplicateEmail
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by GetPreference when no row exists for the key.
var ErrNotFound = errors.New("preference not found")

// SetPreference creates or updates a preference entry.
// Uses UPSERT on conflict to handle updates.
func SetPreference(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("preference key must not be empty")
	}

	return RetryWithBackoff(func() error {
		query := `
			INSERT INTO preferences (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = CURRENT_TIMESTAMP
		`
		_, err := db.ExecContext(context.Background(), query, key, value)
		if err != nil {
			return fmt.Errorf("set preference %q: %w", key, err)
		}
		return nil
	})
}

// GetPreference returns the stored value for key, or ErrNotFound.
func GetPreference(db *sql.DB, key string) (string, error) {
	var value string
	err := RetryWithBackoff(func() error {
		row := db.QueryRowContext(context.Background(),
			`SELECT value FROM preferences WHERE key = ?`, key)
		if err := row.Scan(&value); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get preference %q: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// DeletePreference removes the stored entry for key.
// Deleting a missing key is not an error.
func DeletePreference(db *sql.DB, key string) error {
	return RetryWithBackoff(func() error {
		_, err := db.ExecContext(context.Background(),
			`DELETE FROM preferences WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("delete preference %q: %w", key, err)
		}
		return nil
	})
}

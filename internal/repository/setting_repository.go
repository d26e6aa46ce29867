package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SettingRepository handles application key/value settings.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value. The second return value is false when the key
// is not set.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a setting value, replacing any previous value for the key.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO setting (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSettingNotFound indicates no value is stored under the key.
var ErrSettingNotFound = errors.New("setting not found")

// SettingsRepository persists key/value application settings.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// PGXSettingsRepository implements SettingsRepository using pgx.
type PGXSettingsRepository struct {
	pool pgxPool
}

// NewPGXSettingsRepository wires a pgx backed repository.
func NewPGXSettingsRepository(pool *pgxpool.Pool) *PGXSettingsRepository {
	return &PGXSettingsRepository{pool: pool}
}

// Get returns the stored value or ErrSettingNotFound.
func (r *PGXSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("query setting %q: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value stored under key.
func (r *PGXSettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO settings (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()
    `, key, value)
	if err != nil {
		return fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return nil
}

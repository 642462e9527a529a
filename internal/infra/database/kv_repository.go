package database

import (
	"context"
	"database/sql"
	"errors"
)

const createWidgetStorage = `
	CREATE TABLE IF NOT EXISTS widget_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// KVRepository stores widget key/value pairs in the widget_storage table.
type KVRepository struct {
	DB *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{DB: db}
}

// Migrate creates the storage table when missing.
func (r *KVRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, createWidgetStorage)
	return err
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM widget_storage WHERE key = $1`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO widget_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, key, value)
	return err
}

func (r *KVRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

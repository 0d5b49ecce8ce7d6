package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SlotRepository stores key-value token slots. It satisfies auth.Store.
type SlotRepository struct {
	pool *pgxpool.Pool
}

// Get retrieves a slot by key.
func (r *SlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM local_storage WHERE key = $1`

	var value string
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying slot: %w", err)
	}
	return value, true, nil
}

// Set creates or replaces a slot.
func (r *SlotRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting slot: %w", err)
	}
	return nil
}

// Delete removes a slot by key.
func (r *SlotRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM local_storage WHERE key = $1`
	if _, err := r.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	return nil
}

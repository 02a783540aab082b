package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LoadCartJSON returns the serialized cart stored under (session, key), or "" when there is none.
func LoadCartJSON(ctx context.Context, db sqlx.QueryerContext, sessionID, key string) (string, error) {
	var items string
	err := sqlx.GetContext(ctx, db, &items,
		`SELECT items FROM carts WHERE session_id = ? AND cart_key = ?`, sessionID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("loading cart of session %s: %w", sessionID, err)
	}
	return items, nil
}

func SaveCartJSON(ctx context.Context, db sqlx.ExecerContext, sessionID, key, items string) error {
	const q = `
		INSERT INTO carts (session_id, cart_key, items, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, cart_key) DO UPDATE SET
			items = excluded.items,
			updated_at = excluded.updated_at`
	if _, err := db.ExecContext(ctx, q, sessionID, key, items, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving cart of session %s: %w", sessionID, err)
	}
	return nil
}

func DeleteCart(ctx context.Context, db sqlx.ExecerContext, sessionID, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = ? AND cart_key = ?`, sessionID, key); err != nil {
		return fmt.Errorf("clearing cart of session %s: %w", sessionID, err)
	}
	return nil
}

// PurgeStaleCarts drops carts untouched since before cutoff.
func PurgeStaleCarts(ctx context.Context, db sqlx.ExecerContext, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM carts WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purging stale carts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("fetching rows affected for cart purge: %w", err)
	}
	return n, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feriwala/model"

	"github.com/jmoiron/sqlx"
)

// GetDeliveryCharge returns the stored fees, or ErrNotFound when the admin never saved any.
func GetDeliveryCharge(ctx context.Context, db sqlx.QueryerContext) (*model.DeliveryCharge, error) {
	var c model.DeliveryCharge
	err := sqlx.GetContext(ctx, db, &c, `SELECT inside_dhaka, outside_dhaka FROM delivery_charges WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("delivery charge: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("getting delivery charge: %w", err)
	}
	return &c, nil
}

func UpsertDeliveryCharge(ctx context.Context, db sqlx.ExecerContext, c model.DeliveryCharge) error {
	const q = `
		INSERT INTO delivery_charges (id, inside_dhaka, outside_dhaka, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			inside_dhaka = excluded.inside_dhaka,
			outside_dhaka = excluded.outside_dhaka,
			updated_at = excluded.updated_at`
	if _, err := db.ExecContext(ctx, q, c.InsideDhaka, c.OutsideDhaka, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving delivery charge: %w", err)
	}
	return nil
}

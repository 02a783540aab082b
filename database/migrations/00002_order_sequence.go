package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upOrderSequence, downOrderSequence)
}

// upOrderSequence registers the ORD sequence, starting after any order number already stored.
func upOrderSequence(ctx context.Context, tx *sql.Tx) error {
	var maxNumber sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT order_number FROM orders WHERE order_number LIKE 'ORD%' ORDER BY order_number DESC LIMIT 1`,
	).Scan(&maxNumber)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("reading max order number: %w", err)
	}

	lastNo := 0
	if maxNumber.Valid {
		lastNo, _ = strconv.Atoi(strings.TrimPrefix(maxNumber.String, "ORD"))
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO code_sequences (name, last_no) VALUES ('ORD', ?)`, lastNo,
	); err != nil {
		return fmt.Errorf("inserting ORD sequence: %w", err)
	}
	return nil
}

func downOrderSequence(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM code_sequences WHERE name = 'ORD'`); err != nil {
		return fmt.Errorf("deleting ORD sequence: %w", err)
	}
	return nil
}

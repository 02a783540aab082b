package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	OrderSequence     = "ORD"
	orderNumberPrefix = "ORD"
	orderNumberDigits = 6
)

// NextSequenceInTx increments the named counter and returns it formatted as prefix + zero-padded number.
func NextSequenceInTx(ctx context.Context, tx *sqlx.Tx, name, prefix string, padding int) (string, error) {
	var lastNo int
	err := tx.GetContext(ctx, &lastNo, "SELECT last_no FROM code_sequences WHERE name = ?", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("sequence '%s' not found", name)
		}
		return "", fmt.Errorf("failed to get sequence '%s': %w", name, err)
	}

	newNo := lastNo + 1
	_, err = tx.ExecContext(ctx, `UPDATE code_sequences SET last_no = ? WHERE name = ?`, newNo, name)
	if err != nil {
		return "", fmt.Errorf("failed to update sequence '%s': %w", name, err)
	}

	format := fmt.Sprintf("%s%%0%dd", prefix, padding)
	return fmt.Sprintf(format, newNo), nil
}

// NextOrderNumberInTx hands out the next ORDnnnnnn number.
func NextOrderNumberInTx(ctx context.Context, tx *sqlx.Tx) (string, error) {
	return NextSequenceInTx(ctx, tx, OrderSequence, orderNumberPrefix, orderNumberDigits)
}

// InitializeOrderSequence moves the ORD counter up to the highest stored order number.
// It never moves the counter backwards, so numbers of deleted orders are not reissued.
func InitializeOrderSequence(ctx context.Context, tx *sqlx.Tx) error {
	var maxNumber sql.NullString
	err := tx.GetContext(ctx, &maxNumber,
		"SELECT order_number FROM orders WHERE order_number LIKE 'ORD%' ORDER BY order_number DESC LIMIT 1")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading max order number: %w", err)
	}

	maxNum := 0
	if maxNumber.Valid && strings.HasPrefix(maxNumber.String, orderNumberPrefix) {
		maxNum, _ = strconv.Atoi(strings.TrimPrefix(maxNumber.String, orderNumberPrefix))
	}

	zap.S().Infof("[Sequence] Setting '%s' last_no to at least %d", OrderSequence, maxNum)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO code_sequences (name, last_no) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_no = MAX(last_no, excluded.last_no)`,
		OrderSequence, maxNum)
	if err != nil {
		return fmt.Errorf("initializing sequence '%s': %w", OrderSequence, err)
	}
	return nil
}

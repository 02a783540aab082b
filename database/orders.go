package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, order_number, name, phone, address, note, status, payment_method, delivery_zone,
	sub_total, delivery_charge, total_amount, created_at, updated_at`

// InsertOrderInTx stores an order header and its lines. The caller assigns ID and OrderNumber.
func InsertOrderInTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q,
		o.ID, o.OrderNumber, o.Name, o.Phone, o.Address, o.Note, o.Status, o.PaymentMethod, o.DeliveryZone,
		o.SubTotal, o.DeliveryCharge, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order %s: %w", o.OrderNumber, ErrConflict)
		}
		return fmt.Errorf("inserting order %s: %w", o.OrderNumber, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO order_lines (order_id, line_no, product_id, name, category, image, discount_price, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare order line insert statement: %w", err)
	}
	defer stmt.Close()

	for i := range o.Products {
		line := &o.Products[i]
		line.OrderID = o.ID
		line.LineNo = i + 1
		_, err := stmt.ExecContext(ctx,
			line.OrderID, line.LineNo, line.ProductID, line.Name, line.Category, line.Image,
			line.DiscountPrice, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("inserting line %d of order %s: %w", line.LineNo, o.OrderNumber, err)
		}
	}
	return nil
}

// ListOrders returns orders newest first with their lines. An empty status lists every order.
func ListOrders(ctx context.Context, db sqlx.QueryerContext, status model.OrderStatus) ([]model.Order, error) {
	orders := []model.Order{}
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	if err := sqlx.SelectContext(ctx, db, &orders, q, args...); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if err := attachLines(ctx, db, orders, status); err != nil {
		return nil, err
	}
	return orders, nil
}

func attachLines(ctx context.Context, db sqlx.QueryerContext, orders []model.Order, status model.OrderStatus) error {
	if len(orders) == 0 {
		return nil
	}
	var lines []model.OrderLine
	q := `SELECT l.order_id, l.line_no, l.product_id, l.name, l.category, l.image, l.discount_price, l.quantity
		FROM order_lines l JOIN orders o ON o.id = l.order_id`
	args := []any{}
	if status != "" {
		q += ` WHERE o.status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY l.order_id, l.line_no`
	if err := sqlx.SelectContext(ctx, db, &lines, q, args...); err != nil {
		return fmt.Errorf("listing order lines: %w", err)
	}

	byOrder := make(map[uuid.UUID][]model.OrderLine, len(orders))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	for i := range orders {
		orders[i].Products = byOrder[orders[i].ID]
		if orders[i].Products == nil {
			orders[i].Products = []model.OrderLine{}
		}
	}
	return nil
}

func GetOrder(ctx context.Context, db sqlx.QueryerContext, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	if err := sqlx.GetContext(ctx, db, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting order %s: %w", id, err)
	}

	o.Products = []model.OrderLine{}
	err := sqlx.SelectContext(ctx, db, &o.Products, `
		SELECT order_id, line_no, product_id, name, category, image, discount_price, quantity
		FROM order_lines WHERE order_id = ? ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("getting lines of order %s: %w", id, err)
	}
	return &o, nil
}

// UpdateOrderStatusInTx sets the status and returns the updated order.
func UpdateOrderStatusInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	res, err := tx.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("updating status of order %s: %w", id, err)
	}
	if err := checkAffected(res, "order "+id.String()); err != nil {
		return nil, err
	}
	return GetOrder(ctx, tx, id)
}

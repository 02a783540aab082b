package database

import (
	"context"
	"fmt"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	dashboardTopProducts  = 10
	dashboardActiveOrders = 10
	uncategorized         = "Uncategorized"
)

// GetDashboard computes the admin summary. Sales count delivered orders only.
func GetDashboard(ctx context.Context, db sqlx.QueryerContext) (*model.Dashboard, error) {
	d := &model.Dashboard{TotalSales: decimal.Zero}

	if err := sqlx.GetContext(ctx, db, &d.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil {
		return nil, fmt.Errorf("counting orders: %w", err)
	}

	var delivered []decimal.Decimal
	err := sqlx.SelectContext(ctx, db, &delivered, `SELECT total_amount FROM orders WHERE status = ?`, model.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("reading delivered totals: %w", err)
	}
	d.TotalDelivered = len(delivered)
	for _, amount := range delivered {
		d.TotalSales = d.TotalSales.Add(amount)
	}

	d.TopProducts = []model.ProductSales{}
	err = sqlx.SelectContext(ctx, db, &d.TopProducts, `
		SELECT l.name AS name, COALESCE(MAX(l.category), '') AS category, SUM(l.quantity) AS quantity
		FROM order_lines l JOIN orders o ON o.id = l.order_id
		WHERE o.status = ?
		GROUP BY l.name
		ORDER BY quantity DESC, l.name
		LIMIT ?`, model.StatusDelivered, dashboardTopProducts)
	if err != nil {
		return nil, fmt.Errorf("ranking products: %w", err)
	}
	for i := range d.TopProducts {
		if d.TopProducts[i].Category == "" {
			d.TopProducts[i].Category = uncategorized
		}
	}

	if d.ActiveOrders, err = ListOpenOrders(ctx, db, dashboardActiveOrders); err != nil {
		return nil, err
	}
	return d, nil
}

// ListOpenOrders returns the newest orders that are neither delivered nor cancelled.
func ListOpenOrders(ctx context.Context, db sqlx.QueryerContext, limit int) ([]model.Order, error) {
	orders := []model.Order{}
	err := sqlx.SelectContext(ctx, db, &orders, `SELECT `+orderColumns+` FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, model.StatusDelivered, model.StatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("listing open orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	q, args, err := sqlx.In(`SELECT order_id, line_no, product_id, name, category, image, discount_price, quantity
		FROM order_lines WHERE order_id IN (?) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("building open order lines query: %w", err)
	}
	var lines []model.OrderLine
	if err := sqlx.SelectContext(ctx, db, &lines, q, args...); err != nil {
		return nil, fmt.Errorf("listing open order lines: %w", err)
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
	return orders, nil
}

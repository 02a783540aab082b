package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, category, description, regular_price, discount_price, images, code, created_at, updated_at`

// ListProducts returns the whole catalog, newest first.
func ListProducts(ctx context.Context, db sqlx.QueryerContext) ([]model.Product, error) {
	products := []model.Product{}
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, db, &products, q); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// ListRelatedProducts returns the other products of a category.
func ListRelatedProducts(ctx context.Context, db sqlx.QueryerContext, category string, excludeID uuid.UUID) ([]model.Product, error) {
	products := []model.Product{}
	q := `SELECT ` + productColumns + ` FROM products
		WHERE category = ? COLLATE NOCASE AND id <> ?
		ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, db, &products, q, category, excludeID); err != nil {
		return nil, fmt.Errorf("listing related products for %s: %w", excludeID, err)
	}
	return products, nil
}

func GetProduct(ctx context.Context, db sqlx.QueryerContext, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	q := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	if err := sqlx.GetContext(ctx, db, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting product %s: %w", id, err)
	}
	return &p, nil
}

func InsertProduct(ctx context.Context, db sqlx.ExecerContext, p *model.Product) error {
	const q = `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, q,
		p.ID, p.Name, p.Category, p.Description, p.RegularPrice, p.DiscountPrice,
		p.Images, p.Code, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product %q: %w", p.Name, err)
	}
	return nil
}

func UpdateProduct(ctx context.Context, db sqlx.ExecerContext, p *model.Product) error {
	const q = `
		UPDATE products SET
			name = ?, category = ?, description = ?, regular_price = ?, discount_price = ?,
			images = ?, code = ?, updated_at = ?
		WHERE id = ?`
	res, err := db.ExecContext(ctx, q,
		p.Name, p.Category, p.Description, p.RegularPrice, p.DiscountPrice,
		p.Images, p.Code, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product %s: %w", p.ID, err)
	}
	return checkAffected(res, "product "+p.ID.String())
}

// DeleteProductInTx removes a product and returns what was removed so its images can be cleaned up.
func DeleteProductInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Product, error) {
	p, err := GetProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting product %s: %w", id, err)
	}
	return p, nil
}

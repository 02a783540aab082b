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

func ListCategories(ctx context.Context, db sqlx.QueryerContext) ([]model.Category, error) {
	categories := []model.Category{}
	err := sqlx.SelectContext(ctx, db, &categories,
		`SELECT id, name, image, created_at FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByName looks a category up case-insensitively.
func GetCategoryByName(ctx context.Context, db sqlx.QueryerContext, name string) (*model.Category, error) {
	var c model.Category
	err := sqlx.GetContext(ctx, db, &c,
		`SELECT id, name, image, created_at FROM categories WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("getting category %q: %w", name, err)
	}
	return &c, nil
}

func InsertCategory(ctx context.Context, db sqlx.ExecerContext, c *model.Category) error {
	const q = `INSERT INTO categories (id, name, image, created_at) VALUES (?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, q, c.ID, c.Name, c.Image, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", c.Name, ErrConflict)
		}
		return fmt.Errorf("inserting category %q: %w", c.Name, err)
	}
	return nil
}

// EnsureCategoryInTx returns the existing category with this name or creates an imageless one.
func EnsureCategoryInTx(ctx context.Context, tx *sqlx.Tx, name string) (*model.Category, error) {
	c, err := GetCategoryByName(ctx, tx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating uuid: %w", err)
	}
	c = &model.Category{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	if err := InsertCategory(ctx, tx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategoryInTx removes a category and returns it. Products keep their category name.
func DeleteCategoryInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := tx.GetContext(ctx, &c, `SELECT id, name, image, created_at FROM categories WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting category %s: %w", id, err)
	}
	return &c, nil
}

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

func ListSliderImages(ctx context.Context, db sqlx.QueryerContext) ([]model.SliderImage, error) {
	images := []model.SliderImage{}
	err := sqlx.SelectContext(ctx, db, &images,
		`SELECT id, image_url, created_at, updated_at FROM slider_images ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing slider images: %w", err)
	}
	return images, nil
}

func InsertSliderImage(ctx context.Context, db sqlx.ExecerContext, s *model.SliderImage) error {
	const q = `INSERT INTO slider_images (id, image_url, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, q, s.ID, s.ImageURL, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("inserting slider image: %w", err)
	}
	return nil
}

func DeleteSliderImageInTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.SliderImage, error) {
	var s model.SliderImage
	err := tx.GetContext(ctx, &s, `SELECT id, image_url, created_at, updated_at FROM slider_images WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slider image %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting slider image %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM slider_images WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting slider image %s: %w", id, err)
	}
	return &s, nil
}

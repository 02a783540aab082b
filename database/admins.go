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

const adminColumns = `id, email, password_hash, role, created_at`

func InsertAdmin(ctx context.Context, db sqlx.ExecerContext, a *model.Admin) error {
	const q = `INSERT INTO admins (` + adminColumns + `) VALUES (?, ?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, q, a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", a.Email, ErrConflict)
		}
		return fmt.Errorf("inserting admin %s: %w", a.Email, err)
	}
	return nil
}

func GetAdmin(ctx context.Context, db sqlx.QueryerContext, id uuid.UUID) (*model.Admin, error) {
	var a model.Admin
	if err := sqlx.GetContext(ctx, db, &a, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting admin %s: %w", id, err)
	}
	return &a, nil
}

func GetAdminByEmail(ctx context.Context, db sqlx.QueryerContext, email string) (*model.Admin, error) {
	var a model.Admin
	if err := sqlx.GetContext(ctx, db, &a, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("getting admin %s: %w", email, err)
	}
	return &a, nil
}

// ListAdmins returns super admins first, then everyone else by email.
func ListAdmins(ctx context.Context, db sqlx.QueryerContext) ([]model.Admin, error) {
	admins := []model.Admin{}
	err := sqlx.SelectContext(ctx, db, &admins, `
		SELECT `+adminColumns+` FROM admins
		ORDER BY CASE role WHEN ? THEN 0 ELSE 1 END, email`, model.RoleSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	return admins, nil
}

func DeleteAdmin(ctx context.Context, db sqlx.ExecerContext, id uuid.UUID) error {
	res, err := db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting admin %s: %w", id, err)
	}
	return checkAffected(res, "admin "+id.String())
}

func UpdateAdminRole(ctx context.Context, db sqlx.ExecerContext, id uuid.UUID, role model.Role) error {
	res, err := db.ExecContext(ctx, `UPDATE admins SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		return fmt.Errorf("updating role of admin %s: %w", id, err)
	}
	return checkAffected(res, "admin "+id.String())
}

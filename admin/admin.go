// Package admin manages console accounts and their sessions.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feriwala/auth"
	"feriwala/database"
	"feriwala/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrProtectedAdmin is returned when deleting a super admin.
var ErrProtectedAdmin = errors.New("super admins cannot be deleted")

// Create validates the credentials and stores a new account with a bcrypt hash.
func Create(ctx context.Context, db sqlx.ExtContext, email, password string, role model.Role) (*model.Admin, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, model.NewValidationError(model.MsgCredentialsRequired, "")
	}
	if !role.Valid() {
		return nil, model.NewValidationError(model.MsgInvalidRole, "role")
	}
	normalized, err := auth.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &model.Admin{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        normalized,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.InsertAdmin(ctx, db, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate checks email and password and returns the matching account.
func Authenticate(ctx context.Context, db sqlx.QueryerContext, email, password string) (*model.Admin, error) {
	normalized, err := auth.NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	a, err := database.GetAdminByEmail(ctx, db, normalized)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Delete removes an admin account. Super admins are refused with ErrProtectedAdmin.
func Delete(ctx context.Context, db sqlx.ExtContext, id uuid.UUID) error {
	a, err := database.GetAdmin(ctx, db, id)
	if err != nil {
		return err
	}
	if a.Role == model.RoleSuperAdmin {
		return fmt.Errorf("admin %s: %w", a.Email, ErrProtectedAdmin)
	}
	return database.DeleteAdmin(ctx, db, id)
}

// SetRole changes an account's role and returns the updated account.
func SetRole(ctx context.Context, db sqlx.ExtContext, id uuid.UUID, role model.Role) (*model.Admin, error) {
	if !role.Valid() {
		return nil, model.NewValidationError(model.MsgInvalidRole, "role")
	}
	if err := database.UpdateAdminRole(ctx, db, id, role); err != nil {
		return nil, err
	}
	return database.GetAdmin(ctx, db, id)
}

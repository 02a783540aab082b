package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type Admin struct {
	ID           uuid.UUID `db:"id" json:"_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

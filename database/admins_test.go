package database

import (
	"context"
	"testing"
	"time"

	"feriwala/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmins(t *testing.T) {
	ctx := context.Background()

	newAdmin := func(email string, role model.Role) *model.Admin {
		return &model.Admin{ID: uuid.New(), Email: email, PasswordHash: "x", Role: role, CreatedAt: time.Now()}
	}

	t.Run("should list super admins first", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		require.NoError(t, InsertAdmin(ctx, db, newAdmin("a@shop.test", model.RoleAdmin)))
		require.NoError(t, InsertAdmin(ctx, db, newAdmin("z@shop.test", model.RoleSuperAdmin)))
		require.NoError(t, InsertAdmin(ctx, db, newAdmin("b@shop.test", model.RoleAdmin)))

		got, err := ListAdmins(ctx, db)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "z@shop.test", got[0].Email)
		assert.Equal(t, "a@shop.test", got[1].Email)
		assert.Equal(t, "b@shop.test", got[2].Email)
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		require.NoError(t, InsertAdmin(ctx, db, newAdmin("a@shop.test", model.RoleAdmin)))
		assert.ErrorIs(t, InsertAdmin(ctx, db, newAdmin("a@shop.test", model.RoleAdmin)), ErrConflict)
	})

	t.Run("should change role and delete", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		a := newAdmin("a@shop.test", model.RoleAdmin)
		require.NoError(t, InsertAdmin(ctx, db, a))
		require.NoError(t, UpdateAdminRole(ctx, db, a.ID, model.RoleSuperAdmin))

		got, err := GetAdminByEmail(ctx, db, "a@shop.test")
		require.NoError(t, err)
		assert.Equal(t, model.RoleSuperAdmin, got.Role)

		require.NoError(t, DeleteAdmin(ctx, db, a.ID))
		assert.ErrorIs(t, DeleteAdmin(ctx, db, a.ID), ErrNotFound)
		_, err = GetAdmin(ctx, db, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCarts(t *testing.T) {
	ctx := context.Background()
	db, teardown := setupTestDB(t)
	defer teardown()

	got, err := LoadCartJSON(ctx, db, "s1", "checkoutCart")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, SaveCartJSON(ctx, db, "s1", "checkoutCart", `[{"id":"a"}]`))
	require.NoError(t, SaveCartJSON(ctx, db, "s1", "checkoutCart", `[{"id":"b"}]`))
	got, err = LoadCartJSON(ctx, db, "s1", "checkoutCart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b"}]`, got)

	purged, err := PurgeStaleCarts(ctx, db, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	require.NoError(t, DeleteCart(ctx, db, "s1", "checkoutCart"))
	got, err = LoadCartJSON(ctx, db, "s1", "checkoutCart")
	require.NoError(t, err)
	assert.Empty(t, got)
}

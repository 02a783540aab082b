package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feriwala/auth"
	"feriwala/database"
	"feriwala/database/dbtest"
	"feriwala/middleware"
	"feriwala/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "Sup3r$ecret"

func TestCreateAndAuthenticate(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	ctx := context.Background()

	a, err := Create(ctx, db, "  Owner@Shop.Test ", strongPassword, model.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.test", a.Email)
	assert.NotEqual(t, strongPassword, a.PasswordHash)

	_, err = Create(ctx, db, "owner@shop.test", strongPassword, model.RoleAdmin)
	assert.ErrorIs(t, err, database.ErrConflict)

	for name, tc := range map[string]struct{ email, password, key string }{
		"missing": {"", strongPassword, model.MsgCredentialsRequired},
		"email":   {"not-an-email", strongPassword, model.MsgInvalidEmail},
		"short":   {"a@shop.test", "Ab1!", model.MsgPasswordTooShort},
		"weak":    {"a@shop.test", "alllowercase1!", model.MsgPasswordTooWeak},
		"long":    {"long@shop.test", "Aa1!" + strings.Repeat("x", 76), model.MsgPasswordTooLong},
	} {
		_, err := Create(ctx, db, tc.email, tc.password, model.RoleAdmin)
		ve, ok := model.AsValidation(err)
		require.True(t, ok, "%s: %v", name, err)
		assert.Equal(t, tc.key, ve.Key, name)
	}

	got, err := Authenticate(ctx, db, "OWNER@shop.test", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = Authenticate(ctx, db, "owner@shop.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Authenticate(ctx, db, "nobody@shop.test", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminHandlers(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	ctx := context.Background()
	issuer := auth.NewIssuer("test-secret", time.Hour)

	owner, err := Create(ctx, db, "owner@shop.test", strongPassword, model.RoleSuperAdmin)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/api/login", LoginHandler(db, issuer))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(issuer, db))
		r.Get("/api/me", MeHandler())
		r.Get("/api/allAdmin", ListAdminsHandler(db))
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin)
			r.Post("/api/register", RegisterHandler(db))
			r.Delete("/api/admin/{id}", DeleteAdminHandler(db))
			r.Patch("/api/admin/{id}/role", UpdateRoleHandler(db))
		})
	})

	call := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}
	login := func(email, password string) string {
		rec := call(http.MethodPost, "/api/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp struct {
			Token string      `json:"token"`
			Admin model.Admin `json:"admin"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, email, resp.Admin.Email)
		assert.NotContains(t, rec.Body.String(), "password")
		return resp.Token
	}

	ownerToken := login("owner@shop.test", strongPassword)

	t.Run("should reject bad credentials", func(t *testing.T) {
		rec := call(http.MethodPost, "/api/login", "", `{"email":"owner@shop.test","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
		assert.Equal(t, http.StatusBadRequest, call(http.MethodPost, "/api/login", "", `{}`).Code)
	})

	var staff model.Admin
	t.Run("should register an admin", func(t *testing.T) {
		rec := call(http.MethodPost, "/api/register", ownerToken, `{"email":"Staff@Shop.test","password":"`+strongPassword+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &staff))
		assert.Equal(t, "staff@shop.test", staff.Email)
		assert.Equal(t, model.RoleAdmin, staff.Role)

		rec = call(http.MethodPost, "/api/register", ownerToken, `{"email":"staff@shop.test","password":"`+strongPassword+`"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		long := "Aa1!" + strings.Repeat("x", 76)
		rec = call(http.MethodPost, "/api/register", ownerToken, `{"email":"long@shop.test","password":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at most 72 bytes")
	})

	staffToken := login("staff@shop.test", strongPassword)

	t.Run("should limit super admin routes", func(t *testing.T) {
		rec := call(http.MethodPost, "/api/register", staffToken, `{"email":"x@shop.test","password":"`+strongPassword+`"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = call(http.MethodGet, "/api/me", staffToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "staff@shop.test")
	})

	t.Run("should list super admins first", func(t *testing.T) {
		rec := call(http.MethodGet, "/api/allAdmin", staffToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var admins []model.Admin
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admins))
		require.Len(t, admins, 2)
		assert.Equal(t, owner.ID, admins[0].ID)
	})

	t.Run("should change roles", func(t *testing.T) {
		rec := call(http.MethodPatch, "/api/admin/"+staff.ID.String()+"/role", ownerToken, `{"role":"boss"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = call(http.MethodPatch, "/api/admin/"+staff.ID.String()+"/role", ownerToken, `{"role":"superAdmin"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"superAdmin"`)

		rec = call(http.MethodPatch, "/api/admin/"+staff.ID.String()+"/role", ownerToken, `{"role":"admin"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should protect super admins from deletion", func(t *testing.T) {
		rec := call(http.MethodDelete, "/api/admin/"+owner.ID.String(), ownerToken, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "A super admin cannot be deleted")

		rec = call(http.MethodDelete, "/api/admin/"+staff.ID.String(), ownerToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = call(http.MethodDelete, "/api/admin/"+uuid.NewString(), ownerToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = call(http.MethodGet, "/api/me", staffToken, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feriwala/auth"
	"feriwala/database"
	"feriwala/database/dbtest"
	"feriwala/model"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hello = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, strings.Repeat("feriwala ", 100))
})

func TestCompress(t *testing.T) {
	h := Compress(hello)

	t.Run("should brotli-encode when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
		plain, err := io.ReadAll(brotli.NewReader(rec.Body))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("feriwala ", 100), string(plain))
	})

	t.Run("should pass through otherwise", func(t *testing.T) {
		for _, ae := range []string{"", "gzip", "br;q=0"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", ae)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Empty(t, rec.Header().Get("Content-Encoding"), ae)
			assert.Equal(t, strings.Repeat("feriwala ", 100), rec.Body.String(), ae)
		}
	})
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://shop.example"})(hello)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	CORS([]string{"*"})(hello).ServeHTTP(rec, req)
	assert.Equal(t, "https://evil.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogger(hello).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	ctx := context.Background()

	plain := &model.Admin{ID: uuid.New(), Email: "a@shop.test", PasswordHash: "x", Role: model.RoleAdmin, CreatedAt: time.Now()}
	super := &model.Admin{ID: uuid.New(), Email: "s@shop.test", PasswordHash: "x", Role: model.RoleSuperAdmin, CreatedAt: time.Now()}
	require.NoError(t, database.InsertAdmin(ctx, db, plain))
	require.NoError(t, database.InsertAdmin(ctx, db, super))

	tokenFor := func(a *model.Admin) string {
		tok, _, err := issuer.Issue(a)
		require.NoError(t, err)
		return tok
	}

	whoami := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, _ := auth.AdminFrom(r.Context())
		io.WriteString(w, a.Email)
	})
	adminOnly := RequireAdmin(issuer, db)(whoami)
	superOnly := RequireAdmin(issuer, db)(RequireSuperAdmin(whoami))

	call := func(h http.Handler, authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, call(adminOnly, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(adminOnly, "Bearer nonsense").Code)
	assert.Equal(t, http.StatusUnauthorized, call(adminOnly, "Basic "+tokenFor(plain)).Code)

	rec := call(adminOnly, "Bearer "+tokenFor(plain))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@shop.test", rec.Body.String())

	assert.Equal(t, http.StatusForbidden, call(superOnly, "Bearer "+tokenFor(plain)).Code)
	assert.Equal(t, http.StatusOK, call(superOnly, "Bearer "+tokenFor(super)).Code)

	ghost := &model.Admin{ID: uuid.New(), Role: model.RoleSuperAdmin}
	assert.Equal(t, http.StatusUnauthorized, call(superOnly, "Bearer "+tokenFor(ghost)).Code)
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"feriwala/auth"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/respond"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAdmin checks the bearer token, loads the admin it names and stores it in the request context.
// The role comes from the admins table, not from the token.
func RequireAdmin(issuer *auth.Issuer, db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respond.Message(w, r, locale.MsgUnauthorized, http.StatusUnauthorized)
				return
			}
			id, _, err := issuer.Parse(token)
			if err != nil {
				respond.Message(w, r, locale.MsgUnauthorized, http.StatusUnauthorized)
				return
			}
			admin, err := database.GetAdmin(r.Context(), db, id)
			if err != nil {
				if !errors.Is(err, database.ErrNotFound) {
					zap.S().Errorw("loading admin for token", "admin", id, "error", err)
				}
				respond.Message(w, r, locale.MsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAdmin(r.Context(), admin)))
		})
	}
}

// RequireSuperAdmin must run after RequireAdmin.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := auth.AdminFrom(r.Context())
		if !ok {
			respond.Message(w, r, locale.MsgUnauthorized, http.StatusUnauthorized)
			return
		}
		if admin.Role != model.RoleSuperAdmin {
			respond.Message(w, r, locale.MsgForbidden, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package admin

import (
	"errors"
	"net/http"
	"time"

	"feriwala/auth"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/respond"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     *model.Admin `json:"admin"`
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, model.NewValidationError(model.MsgInvalidRequest, "id")
	}
	return id, nil
}

// RegisterHandler creates a plain admin account. Routing restricts it to super admins.
func RegisterHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if !respond.Decode(w, r, &req) {
			return
		}
		a, err := Create(r.Context(), conn, req.Email, req.Password, model.RoleAdmin)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if by, ok := auth.AdminFrom(r.Context()); ok {
			zap.S().Infow("admin registered", "email", a.Email, "by", by.Email)
		}
		respond.JSON(w, http.StatusCreated, a)
	}
}

func LoginHandler(conn *sqlx.DB, issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if !respond.Decode(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			respond.Failure(w, r, model.NewValidationError(model.MsgCredentialsRequired, ""))
			return
		}
		a, err := Authenticate(r.Context(), conn, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				respond.Message(w, r, locale.MsgInvalidCredentials, http.StatusUnauthorized)
				return
			}
			respond.Failure(w, r, err)
			return
		}
		token, expires, err := issuer.Issue(a)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, Admin: a})
	}
}

// MeHandler returns the admin attached by the auth middleware.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := auth.AdminFrom(r.Context())
		if !ok {
			respond.Message(w, r, locale.MsgUnauthorized, http.StatusUnauthorized)
			return
		}
		respond.JSON(w, http.StatusOK, a)
	}
}

func ListAdminsHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := database.ListAdmins(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, admins)
	}
}

func DeleteAdminHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := Delete(r.Context(), conn, id); err != nil {
			if errors.Is(err, ErrProtectedAdmin) {
				respond.Message(w, r, locale.MsgCannotDeleteSuperAdmin, http.StatusForbidden)
				return
			}
			respond.Failure(w, r, err)
			return
		}
		respond.Message(w, r, locale.MsgDeleted, http.StatusOK)
	}
}

func UpdateRoleHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		var req struct {
			Role model.Role `json:"role"`
		}
		if !respond.Decode(w, r, &req) {
			return
		}
		a, err := SetRole(r.Context(), conn, id, req.Role)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, a)
	}
}

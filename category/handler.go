package category

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"feriwala/config"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/respond"
	"feriwala/upload"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func ListCategoriesHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := database.ListCategories(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, categories)
	}
}

// CreateCategoryHandler takes a multipart name and image. A name that exists in any letter case is a 409.
func CreateCategoryHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		if err := r.ParseMultipartForm(cfg.Uploads.MaxBytes + 1<<20); err != nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "form"))
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			respond.Failure(w, r, model.NewValidationError(model.MsgNameRequired, "name"))
			return
		}
		if _, err := database.GetCategoryByName(r.Context(), conn, name); err == nil {
			respond.Failure(w, r, fmt.Errorf("category %q: %w", name, database.ErrConflict))
			return
		}

		files := r.MultipartForm.File["image"]
		if len(files) == 0 {
			respond.Failure(w, r, model.NewValidationError(model.MsgImageRequired, "image"))
			return
		}
		image, err := upload.Save(cfg.Uploads.Dir, files[0], cfg.Uploads.MaxBytes)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}

		c := model.Category{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      name,
			Image:     image,
			CreatedAt: time.Now().UTC(),
		}
		if err := database.InsertCategory(r.Context(), conn, &c); err != nil {
			upload.Remove(cfg.Uploads.Dir, image)
			respond.Failure(w, r, err)
			return
		}
		zap.S().Infow("category created", "id", c.ID, "name", c.Name)
		respond.JSON(w, http.StatusCreated, c)
	}
}

// DeleteCategoryHandler removes the category and its image. Products keep the category name.
func DeleteCategoryHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "id"))
			return
		}

		tx, err := conn.BeginTxx(r.Context(), nil)
		if err != nil {
			respond.Failure(w, r, fmt.Errorf("starting transaction: %w", err))
			return
		}
		defer tx.Rollback()

		deleted, err := database.DeleteCategoryInTx(r.Context(), tx, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := tx.Commit(); err != nil {
			respond.Failure(w, r, fmt.Errorf("committing category delete: %w", err))
			return
		}
		upload.Remove(config.GetConfig().Uploads.Dir, deleted.Image)

		respond.JSON(w, http.StatusOK, map[string]any{
			"message":      locale.T(locale.Negotiate(r), locale.MsgDeleted),
			"deletedCount": 1,
		})
	}
}

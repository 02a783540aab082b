package slider

import (
	"fmt"
	"net/http"
	"time"

	"feriwala/config"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"
	"feriwala/respond"
	"feriwala/upload"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListSlidersHandler returns the homepage slides in upload order.
func ListSlidersHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := database.ListSliderImages(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, images)
	}
}

func CreateSliderHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		if err := r.ParseMultipartForm(cfg.Uploads.MaxBytes + 1<<20); err != nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "form"))
			return
		}
		files := r.MultipartForm.File["image"]
		if len(files) == 0 {
			respond.Failure(w, r, model.NewValidationError(model.MsgImageRequired, "image"))
			return
		}
		imageURL, err := upload.Save(cfg.Uploads.Dir, files[0], cfg.Uploads.MaxBytes)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}

		now := time.Now().UTC()
		s := model.SliderImage{ID: uuid.Must(uuid.NewV7()), ImageURL: imageURL, CreatedAt: now, UpdatedAt: now}
		if err := database.InsertSliderImage(r.Context(), conn, &s); err != nil {
			upload.Remove(cfg.Uploads.Dir, imageURL)
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, s)
	}
}

// DeleteSliderHandler deletes the slide named by ?id=.
func DeleteSliderHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Query().Get("id"))
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

		deleted, err := database.DeleteSliderImageInTx(r.Context(), tx, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := tx.Commit(); err != nil {
			respond.Failure(w, r, fmt.Errorf("committing slider delete: %w", err))
			return
		}
		upload.Remove(config.GetConfig().Uploads.Dir, deleted.ImageURL)
		respond.Message(w, r, locale.MsgDeleted, http.StatusOK)
	}
}

package loader

import (
	"net/http"

	"feriwala/model"
	"feriwala/respond"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const maxImportBytes = 16 << 20

// ImportProductsHandler takes a catalog CSV as the multipart "file" field and imports it in one transaction.
func ImportProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "file"))
			return
		}
		defer file.Close()

		zap.S().Infow("HTTP request received: importing products", "file", header.Filename, "size", header.Size)
		count, err := ImportProducts(r.Context(), db, file)
		if err != nil {
			if _, ok := model.AsValidation(err); ok {
				respond.Failure(w, r, err)
				return
			}
			respond.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]any{"imported": count})
	}
}

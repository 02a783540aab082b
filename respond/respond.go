// Package respond writes the JSON bodies shared by every handler.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"feriwala/database"
	"feriwala/locale"
	"feriwala/model"

	"go.uber.org/zap"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("encoding response", "error", err)
	}
}

// Error writes {"message": message}.
func Error(w http.ResponseWriter, message string, statusCode int) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// Message writes a localized {"message": ...} for key.
func Message(w http.ResponseWriter, r *http.Request, key string, statusCode int) {
	Error(w, locale.T(locale.Negotiate(r), key), statusCode)
}

// Failure maps err to a status and a localized message. Validation errors become 400,
// missing rows 404 and unique-key clashes 409. Anything else is logged and answered with 500.
func Failure(w http.ResponseWriter, r *http.Request, err error) {
	tag := locale.Negotiate(r)

	if ve, ok := model.AsValidation(err); ok {
		Error(w, locale.T(tag, ve.Key), http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, database.ErrNotFound):
		Error(w, locale.T(tag, locale.MsgNotFound), http.StatusNotFound)
	case errors.Is(err, database.ErrConflict):
		Error(w, locale.T(tag, locale.MsgAlreadyExists), http.StatusConflict)
	default:
		zap.S().Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Error(w, locale.T(tag, locale.MsgInternalError), http.StatusInternalServerError)
	}
}

// Decode reads a JSON body into v, answering 400 itself when the body is malformed.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, r, model.MsgInvalidRequest, http.StatusBadRequest)
		return false
	}
	return true
}

package delivery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feriwala/config"
	"feriwala/database/dbtest"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryChargeHandlers(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	config.Use(config.Default())

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		GetDeliveryChargeHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/api/updatedeliverycharge", nil))
		return rec
	}
	patch := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		UpdateDeliveryChargeHandler(db)(rec, httptest.NewRequest(http.MethodPatch, "/api/updatedeliverycharge", strings.NewReader(body)))
		return rec
	}

	rec := get()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"insideDhaka":150,"outsideDhaka":200}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, patch(`{"insideDhaka":70,"outsideDhaka":150}`).Code)
	assert.JSONEq(t, `{"insideDhaka":70,"outsideDhaka":150}`, get().Body.String())

	assert.Equal(t, http.StatusBadRequest, patch(`{"insideDhaka":-1,"outsideDhaka":150}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(`{"insideDhaka":60}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(`not json`).Code)
	assert.JSONEq(t, `{"insideDhaka":70,"outsideDhaka":150}`, get().Body.String())
}

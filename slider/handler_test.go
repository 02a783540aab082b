package slider

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"feriwala/config"
	"feriwala/database/dbtest"
	"feriwala/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")

func slideForm(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "slide.jpg")
	require.NoError(t, err)
	_, err = fw.Write(jpegHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/slider", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSliderHandlers(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	cfg := config.Default()
	cfg.Uploads.Dir = t.TempDir()
	config.Use(cfg)

	r := chi.NewRouter()
	r.Get("/api/sliders", ListSlidersHandler(db))
	r.Post("/api/slider", CreateSliderHandler(db))
	r.Delete("/api/sliderDelete", DeleteSliderHandler(db))

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	var first, second model.SliderImage
	rec := serve(slideForm(t))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	rec = serve(slideForm(t))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Contains(t, first.ImageURL, ".jpg")

	rec = serve(httptest.NewRequest(http.MethodGet, "/api/sliders", nil))
	var list []model.SliderImage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodDelete, "/api/sliderDelete?id="+first.ID.String(), nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(httptest.NewRequest(http.MethodDelete, "/api/sliderDelete?id="+uuid.NewString(), nil)).Code)
	assert.Equal(t, http.StatusBadRequest, serve(httptest.NewRequest(http.MethodDelete, "/api/sliderDelete", nil)).Code)
}

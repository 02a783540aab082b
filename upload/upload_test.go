package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feriwala/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("should store images under a generated name", func(t *testing.T) {
		fh := fileHeaders(t, map[string][]byte{"photo.bin": append(pngHeader, make([]byte, 100)...)})[0]

		public, err := Save(dir, fh, 1<<20)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(public, "/uploads/"))
		assert.True(t, strings.HasSuffix(public, ".png"))

		info, err := os.Stat(filepath.Join(dir, filepath.Base(public)))
		require.NoError(t, err)
		assert.Equal(t, int64(len(pngHeader)+100), info.Size())

		Remove(dir, public)
		_, err = os.Stat(filepath.Join(dir, filepath.Base(public)))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("should reject non-images", func(t *testing.T) {
		fh := fileHeaders(t, map[string][]byte{"evil.png": []byte("#!/bin/sh\necho hi\n")})[0]

		_, err := Save(dir, fh, 1<<20)
		ve, ok := model.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, model.MsgInvalidImage, ve.Key)
	})

	t.Run("should reject svg", func(t *testing.T) {
		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
		fh := fileHeaders(t, map[string][]byte{"logo.svg": svg})[0]

		_, err := Save(dir, fh, 1<<20)
		ve, ok := model.AsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, model.MsgInvalidImage, ve.Key)
	})

	t.Run("should reject files over the limit", func(t *testing.T) {
		fh := fileHeaders(t, map[string][]byte{"big.png": append(pngHeader, make([]byte, 2048)...)})[0]

		_, err := Save(dir, fh, 1024)
		ve, ok := model.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, model.MsgImageTooLarge, ve.Key)
	})
}

func TestSaveAllRollsBack(t *testing.T) {
	dir := t.TempDir()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range []struct {
		name    string
		content []byte
	}{{"a.png", pngHeader}, {"b.txt", []byte("plain text")}} {
		fw, err := mw.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, err := SaveAll(dir, req.MultipartForm.File["images"], 1<<20)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.png")
	require.NoError(t, os.WriteFile(keep, pngHeader, 0o644))

	Remove(dir, "/placeholder.png")
	Remove(dir, "https://cdn.example.com/keep.png")

	_, err := os.Stat(keep)
	assert.NoError(t, err)
}

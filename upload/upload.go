// Package upload stores admin image uploads on disk and serves them under /uploads/.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"feriwala/model"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PublicPrefix = "/uploads/"

// sniffLen is how much of the file mimetype needs to see.
const sniffLen = 3072

// rasterTypes are the accepted upload formats.
var rasterTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Save checks the size limit, sniffs the content and writes the file as <uuidv7><ext> in dir.
// It returns the public path. Anything but PNG, JPEG, WebP or GIF is rejected with a validation error.
func Save(dir string, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", model.NewValidationError(model.MsgImageTooLarge, fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), rasterTypes...) {
		return "", model.NewValidationError(model.MsgInvalidImage, fh.Filename)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir %s: %w", dir, err)
	}

	name := uuid.Must(uuid.NewV7()).String() + mt.Extension()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}

	var limit io.Reader = src
	if maxBytes > 0 {
		limit = io.LimitReader(src, maxBytes-int64(n)+1)
	}
	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), limit))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && maxBytes > 0 && written > maxBytes {
		err = model.NewValidationError(model.MsgImageTooLarge, fh.Filename)
	}
	if err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", err
	}
	return PublicPrefix + name, nil
}

// SaveAll stores every file, removing the ones already written if a later one fails.
func SaveAll(dir string, files []*multipart.FileHeader, maxBytes int64) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := Save(dir, fh, maxBytes)
		if err != nil {
			RemoveAll(dir, paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove deletes a previously saved file. Paths outside /uploads/ are ignored and failures are only logged.
func Remove(dir, publicPath string) {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, PublicPrefix))
	if name == "." || name == string(filepath.Separator) {
		return
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
		zap.S().Warnw("removing upload", "path", publicPath, "error", err)
	}
}

func RemoveAll(dir string, publicPaths []string) {
	for _, p := range publicPaths {
		Remove(dir, p)
	}
}

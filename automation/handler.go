package automation

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// RendererFunc adapts a function to PDFRenderer.
type RendererFunc func(ctx context.Context, html string) ([]byte, error)

func (f RendererFunc) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return f(ctx, html)
}

// WritePDF sends pdf as an inline attachment named filename.
func WritePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

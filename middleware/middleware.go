// Package middleware holds the HTTP wrappers shared by the storefront and admin routes.
package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with status, size and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			zap.L().Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

type brotliResponseWriter struct {
	http.ResponseWriter
	bw          *brotli.Writer
	wroteHeader bool
}

func (w *brotliResponseWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *brotliResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.bw.Write(b)
}

func (w *brotliResponseWriter) Flush() {
	w.bw.Flush()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compress brotli-encodes responses for clients that accept br.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if !acceptsBrotli(r.Header.Get("Accept-Encoding")) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
		defer bw.Close()
		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, bw: bw}, r)
	})
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

// CORS answers preflights and sets the allow headers for the configured origins. "*" allows any origin.
func CORS(allowed []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           600,
	}
	if slices.Contains(allowed, "*") {
		// "*" cannot carry credentials; echo the origin.
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts).Handler
}

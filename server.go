package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"feriwala/auth"
	"feriwala/automation"
	"feriwala/cart"
	"feriwala/config"
	"feriwala/database"
	"feriwala/loader"
	"feriwala/locale"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// runServer prepares the database and serves the API until ctx is cancelled.
func runServer(ctx context.Context, cfg config.Config) error {
	dbConn, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	zap.S().Info("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}

	if n, err := locale.LoadLabelsFile(cfg.Locale.LabelsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.S().Infow("No label overrides, using built-in labels", "file", cfg.Locale.LabelsFile)
		} else {
			zap.S().Warnw("Failed to load label overrides", "file", cfg.Locale.LabelsFile, "error", err)
		}
	} else {
		zap.S().Infow("Label overrides loaded", "count", n)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("creating uploads dir %s: %w", cfg.Uploads.Dir, err)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = auth.RandomSecret()
		zap.S().Warn("auth.jwt_secret is not set; using a random secret, tokens will not survive a restart")
	}
	issuer := auth.NewIssuer(secret, cfg.Auth.TokenTTL)

	store := cart.NewSQLStore(dbConn)
	carts := cart.NewService(store, cart.CatalogLookup(dbConn))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(cfg, dbConn, issuer, carts, automation.NewChrome(cfg.Invoice)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	return serve(ctx, srv, ln, func(ctx context.Context) error {
		return store.RunPurger(ctx, cfg.Cart.TTL, cfg.Cart.PurgeInterval)
	})
}

// serve runs srv on ln next to the background tasks. Cancelling ctx, or any of them failing,
// shuts the server down gracefully and stops the rest.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, background ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.S().Infof("Starting server on http://%s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.S().Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	for _, task := range background {
		task := task
		g.Go(func() error { return task(gctx) })
	}

	return g.Wait()
}

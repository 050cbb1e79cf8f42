package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/duckdb"
)

// Config captures the settings for serving a DuckDB-backed dashboard.
type Config struct {
	Addr   string
	DBPath string
}

// Serve opens the DuckDB store and serves the dashboard until ctx is done.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	db, err := duckdb.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	handler, err := NewHandler(db, cfg.DBPath)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	clog.FromContext(ctx).Info("serving dashboard", "addr", cfg.Addr, "db", cfg.DBPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

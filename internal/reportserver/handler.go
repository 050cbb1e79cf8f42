package reportserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/duckdb"
)

// NewHandler builds the HTTP handler for the dashboard, its JSON feed and the
// raw DuckDB file.
func NewHandler(db *sql.DB, dbPath string) (http.Handler, error) {
	if db == nil {
		return nil, errors.New("reportserver: db is required")
	}
	if dbPath == "" {
		return nil, errors.New("reportserver: db path is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", serveDashboard(db))
	mux.Handle("/api/runs", serveRuns(db))
	mux.Handle("/data/db.duckdb", serveDatabase(dbPath))
	return mux, nil
}

// serveDashboard renders run accuracy and question stability from SQL.
func serveDashboard(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		ctx := r.Context()
		runs, err := duckdb.ListRunAccuracy(ctx, db)
		if err != nil {
			clog.FromContext(ctx).Error("list runs", "error", err)
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		questions, err := duckdb.ListQuestionConsistency(ctx, db)
		if err != nil {
			clog.FromContext(ctx).Error("list questions", "error", err)
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Dashboard(runs, questions).Render(ctx, w); err != nil {
			clog.FromContext(ctx).Error("render dashboard", "error", err)
		}
	})
}

// serveRuns returns run accuracy rows as JSON.
func serveRuns(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		runs, err := duckdb.ListRunAccuracy(r.Context(), db)
		if err != nil {
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []duckdb.RunAccuracy{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(runs)
	})
}

// serveDatabase serves the DuckDB file from disk for offline analysis.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}

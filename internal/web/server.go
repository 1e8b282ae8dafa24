// Package web serves the recipe manager as server-rendered HTML pages.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"

	"github.com/aretw0/pantry/internal/platform"
	"github.com/aretw0/pantry/internal/selfcheck"
	"github.com/aretw0/pantry/internal/web/static"
	"github.com/aretw0/pantry/internal/web/templates"
	pantrylifecycle "github.com/aretw0/pantry/pkg/adapters/lifecycle"
	"github.com/aretw0/pantry/pkg/core"
)

func init() {
	_ = mime.AddExtensionType(".css", "text/css; charset=utf-8")
}

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// Config holds the inputs of the web server.
type Config struct {
	Store  *core.Store
	Logger *slog.Logger

	// Adapter is the backend used by the scratch self-check. Defaults to fs.
	Adapter string

	// SelfCheck overrides the diagnostic run behind /selfcheck.
	SelfCheck func(ctx context.Context) (selfcheck.Report, error)

	// Now is the clock for the footer. Defaults to time.Now.
	Now func() time.Time
}

// Server renders the recipe pages for a store.
type Server struct {
	store     *core.Store
	logger    *slog.Logger
	selfCheck func(ctx context.Context) (selfcheck.Report, error)
	now       func() time.Time
	pages     map[string]*template.Template
}

var pageFiles = []string{"index.tmpl", "form.tmpl", "selfcheck.tmpl"}

// NewServer parses the page templates and returns a server for cfg.Store.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Adapter == "" {
		cfg.Adapter = platform.AdapterFS
	}
	if cfg.SelfCheck == nil {
		adapter, logger := cfg.Adapter, cfg.Logger
		cfg.SelfCheck = func(ctx context.Context) (selfcheck.Report, error) {
			return selfcheck.RunScratch(ctx, adapter, logger)
		}
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := templates.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Server{
		store:     cfg.Store,
		logger:    cfg.Logger,
		selfCheck: cfg.SelfCheck,
		now:       cfg.Now,
		pages:     pages,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleDelete)
	mux.HandleFunc("GET /add", s.handleAddForm)
	mux.HandleFunc("POST /add", s.handleAdd)
	mux.HandleFunc("GET /edit", s.handleEditForm)
	mux.HandleFunc("POST /edit", s.handleEdit)
	mux.HandleFunc("GET /selfcheck", s.handleSelfCheck)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /debug/state", s.handleState)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", assetHandler(static.Files)))
	return s.withRequestID(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
// External changes of the data files are logged while serving.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.watchChanges(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving recipes", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) watchChanges(ctx context.Context) {
	src := pantrylifecycle.NewSource(s.store)
	if err := src.Start(ctx); err != nil {
		s.logger.Debug("change log disabled", "error", err)
		return
	}
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range src.Events() {
			s.logger.Info("data file changed", "event", e.String())
		}
		return nil
	})
}

type ctxKey struct{}

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	resp := map[string]string{"status": "ok"}
	enc := json.NewEncoder(w)
	enc.Encode(resp) // nolint:errchkjson
}

func assetHandler(staticFS fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(staticFS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fileServer.ServeHTTP(w, r)
	})
}

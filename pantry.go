package pantry

import (
	"log/slog"
	"time"

	"github.com/aretw0/pantry/internal/platform"
	"github.com/aretw0/pantry/pkg/core"
)

// --- Types ---

// Store is a public alias for the recipe store.
type Store = core.Store

// Recipe is a public alias for the recipe record.
type Recipe = core.Recipe

// Draft is a public alias for the mutable recipe fields.
type Draft = core.Draft

// Config is the file and environment level configuration (pantry.yaml, PANTRY_*).
type Config = platform.Config

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
)

// --- Configuration ---

// Option defines a functional option for configuring the store.
type Option = platform.Option

// WithLogger sets the logger for the store and its repository.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithReadOnly opens the data directory without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithCategoriesFile sets the category file name; .yaml/.yml selects YAML.
func WithCategoriesFile(name string) Option {
	return platform.WithCategoriesFile(name)
}

// WithAutoInit controls whether the data directory and seed files are created. Enabled by default.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithDevSafety controls the temp-dir sandbox applied to `go run`/`go test` binaries.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the capacity of the change event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the data directory at path and returns a ready store.
func New(path string, opts ...Option) (*core.Store, error) {
	return platform.New(path, opts...)
}

// Init prepares the data directory at path and returns its repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// Close releases any resource held by the store's repository.
func Close(store *core.Store) error {
	return platform.Close(store)
}

// --- Discovery ---

// FindRoot searches upwards from dir for a pantry.yaml or data/recipes.json.
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}

// LoadConfig reads pantry.yaml (or file) and PANTRY_* environment variables.
func LoadConfig(file, searchDir string) (Config, error) {
	return platform.LoadConfig(file, searchDir)
}

package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/pantry/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration for the recipe store.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	clock      func() time.Time
	config     map[string]interface{}
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		config:  make(map[string]interface{}),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the store and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom storage adapter (e.g. a mock).
// If provided, the adapter named by WithAdapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithClock overrides the time source used for recipe timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithCategoriesFile sets the category file name of the fs adapter.
// A .yaml or .yml extension switches it to YAML.
func WithCategoriesFile(name string) Option {
	return func(o *options) {
		o.config["categories_file"] = name
	}
}

// WithAutoInit controls whether Init creates the data directory and seed files.
// Enabled by default.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithEventBuffer sets the capacity of the change event channel.
// Zero means default (16).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors of the Watch loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Save, Add, Update and Delete return core.ErrReadOnly.
// 2. Initialization (mkdir, seed files) is skipped.
// 3. Dev safety (go run temp dir) is bypassed, the real path is used.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the data directory is re-rooted into a temporary directory
// so that development runs never touch real data.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

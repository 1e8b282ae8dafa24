package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/pantry/pkg/adapters/fs"
	"github.com/aretw0/pantry/pkg/adapters/sqlite"
	"github.com/aretw0/pantry/pkg/core"
)

// Init builds the repository for the data directory at uri and, unless
// read-only or auto-init is disabled, prepares it (directory, seed files, schema).
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	repo, err := open(uri, o)
	if err != nil {
		return nil, err
	}

	autoInit := true
	if val, ok := o.config["auto_init"].(bool); ok {
		autoInit = val
	}
	if autoInit {
		if err := repo.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func open(uri string, o *options) (core.Repository, error) {
	path := resolvePath(uri, o)
	isReadOnly, _ := o.config["read_only"].(bool)

	switch o.adapter {
	case AdapterFS:
		return initFS(path, isReadOnly, o), nil
	case AdapterSQLite:
		return sqlite.NewRepository(sqlite.Config{
			Path:     path,
			ReadOnly: isReadOnly,
			Logger:   o.logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolvePath applies the dev safety rules to the user supplied data directory.
func resolvePath(uri string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only runs cannot damage data, so they keep the real path.
	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataDir(uri, useTemp)

	if o.logger != nil && useTemp && resolved != uri {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}

func initFS(path string, readOnly bool, o *options) *fs.Repository {
	mustExist, _ := o.config["must_exist"].(bool)
	categoriesFile, _ := o.config["categories_file"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewRepository(fs.Config{
		Path:           path,
		CategoriesFile: categoriesFile,
		ReadOnly:       readOnly,
		MustExist:      mustExist,
		Logger:         o.logger,
		ErrorHandler:   errorHandler,
		EventBuffer:    eventBuffer,
	})
}

// Package fs implements core.Repository on plain data files in a directory:
// one file holding the recipe array and one holding the category list.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/pantry/pkg/core"
)

const (
	DefaultRecipesFile    = "recipes.json"
	DefaultCategoriesFile = "categories.json"

	filePerm = 0644
	dirPerm  = 0755
)

// Repository implements core.Repository using the filesystem.
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
	lastSave      *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path           string // data directory
	RecipesFile    string // defaults to recipes.json
	CategoriesFile string // defaults to categories.json; .yaml/.yml selects YAML
	ReadOnly       bool
	MustExist      bool
	Logger         *slog.Logger
	ErrorHandler   func(error)   // receives watcher failures; nil logs them
	Debounce       time.Duration // watcher quiet period, defaults to 50ms
	EventBuffer    int           // watcher channel capacity, defaults to 16
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.RecipesFile == "" {
		config.RecipesFile = DefaultRecipesFile
	}
	if config.CategoriesFile == "" {
		config.CategoriesFile = DefaultCategoriesFile
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// RecipesPath returns the absolute location of the recipe file.
func (r *Repository) RecipesPath() string {
	return r.resolve(r.config.RecipesFile)
}

// CategoriesPath returns the absolute location of the category file.
func (r *Repository) CategoriesPath() string {
	return r.resolve(r.config.CategoriesFile)
}

// DataFiles lists the files backing the repository.
func (r *Repository) DataFiles() []string {
	return []string{r.RecipesPath(), r.CategoriesPath()}
}

func (r *Repository) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.Path, name)
}

func (r *Repository) serializerFor(path string) (Serializer, error) {
	ext := filepath.Ext(path)
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
	return s, nil
}

// Initialize creates the data directory and seeds missing data files:
// the category file with core.DefaultCategories and the recipe file with an empty array.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data directory does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
	}
	if r.config.ReadOnly {
		return nil
	}

	if err := os.MkdirAll(r.Path, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if !exists(r.CategoriesPath()) {
		s, err := r.serializerFor(r.CategoriesPath())
		if err != nil {
			return err
		}
		data, err := s.EncodeCategories(core.DefaultCategories)
		if err != nil {
			return err
		}
		if err := r.write(r.CategoriesPath(), data); err != nil {
			return err
		}
		r.config.Logger.Debug("seeded categories", "path", r.CategoriesPath())
	}

	if !exists(r.RecipesPath()) {
		if err := r.SaveRecipes(ctx, []core.Recipe{}); err != nil {
			return err
		}
		r.config.Logger.Debug("seeded recipes", "path", r.RecipesPath())
	}
	return nil
}

// LoadRecipes reads the whole recipe file. A missing file is an empty collection.
func (r *Repository) LoadRecipes(ctx context.Context) ([]core.Recipe, error) {
	path := r.RecipesPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	s, err := r.serializerFor(path)
	if err != nil {
		return nil, err
	}
	recipes, err := s.DecodeRecipes(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if recipes == nil {
		recipes = []core.Recipe{}
	}
	return recipes, nil
}

// SaveRecipes overwrites the recipe file with the whole collection,
// creating the data directory when needed.
func (r *Repository) SaveRecipes(ctx context.Context, recipes []core.Recipe) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.RecipesPath()
	s, err := r.serializerFor(path)
	if err != nil {
		return err
	}
	if recipes == nil {
		recipes = []core.Recipe{}
	}
	data, err := s.EncodeRecipes(recipes)
	if err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := r.write(path, data); err != nil {
		return err
	}

	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

// LoadCategories reads the category file.
// It returns core.ErrNoCategoryFile when the file does not exist.
func (r *Repository) LoadCategories(ctx context.Context) ([]string, error) {
	path := r.CategoriesPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNoCategoryFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	s, err := r.serializerFor(path)
	if err != nil {
		return nil, err
	}
	categories, err := s.DecodeCategories(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return categories, nil
}

func (r *Repository) write(path string, data []byte) error {
	if err := writeFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)

// Package sqlite implements core.Repository on a single SQLite database file.
// Like the fs adapter it works on the whole collection: a save replaces every
// row inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/pantry/pkg/core"
)

// DefaultFile is the database file name inside the data directory.
const DefaultFile = "pantry.db"

//go:embed schema.sql
var schemaSQL string

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path     string // data directory
	File     string // defaults to pantry.db
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on SQLite.
type Repository struct {
	config Config

	mu       sync.Mutex
	db       *sql.DB
	lastSave *time.Time
}

// NewRepository creates a repository; the database is opened lazily.
func NewRepository(config Config) *Repository {
	if config.File == "" {
		config.File = DefaultFile
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{config: config}
}

// DBPath returns the location of the database file.
func (r *Repository) DBPath() string {
	if filepath.IsAbs(r.config.File) {
		return r.config.File
	}
	return filepath.Join(r.config.Path, r.config.File)
}

// DataFiles lists the files backing the repository.
func (r *Repository) DataFiles() []string {
	return []string{r.DBPath()}
}

// conn returns the open database, opening it and applying the schema on first use.
// With create=false a missing database file yields (nil, nil). A read-only
// repository never applies the schema.
func (r *Repository) conn(create bool) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}

	path := r.DBPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if !create {
			return nil, nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if !r.config.ReadOnly {
		if _, err := db.Exec(schemaSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	r.config.Logger.Debug("opened database", "path", path)
	r.db = db
	return db, nil
}

// hasTable reports whether the named table exists. Only a read-only
// repository can see a database without the schema.
func (r *Repository) hasTable(ctx context.Context, db *sql.DB, name string) (bool, error) {
	if !r.config.ReadOnly {
		return true, nil
	}
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

// Close releases the database handle. It is safe to call more than once.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Initialize creates the database and seeds the default categories when none are stored.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		return nil
	}
	db, err := r.conn(true)
	if err != nil {
		return err
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.saveCategories(ctx, db, core.DefaultCategories)
}

// LoadRecipes returns every row in insertion order. A missing database is an empty collection.
func (r *Repository) LoadRecipes(ctx context.Context) ([]core.Recipe, error) {
	db, err := r.conn(false)
	if err != nil {
		return nil, err
	}
	recipes := []core.Recipe{}
	if db == nil {
		return recipes, nil
	}
	if ok, err := r.hasTable(ctx, db, "recipes"); err != nil || !ok {
		return recipes, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, ingredients, instructions, category, created_at, updated_at
		FROM recipes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec core.Recipe
		var updated sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Ingredients, &rec.Instructions,
			&rec.Category, &rec.CreatedAt, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		rec.UpdatedAt = updated.String
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// SaveRecipes replaces every stored row with recipes in a single transaction.
func (r *Repository) SaveRecipes(ctx context.Context, recipes []core.Recipe) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.conn(true)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipes (position, id, name, ingredients, instructions, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recipes {
		var updated sql.NullString
		if rec.UpdatedAt != "" {
			updated = sql.NullString{String: rec.UpdatedAt, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, rec.ID, rec.Name, rec.Ingredients,
			rec.Instructions, rec.Category, rec.CreatedAt, updated); err != nil {
			return fmt.Errorf("failed to insert recipe %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.mu.Lock()
	now := time.Now()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

// LoadCategories returns the stored categories, or core.ErrNoCategoryFile when none are stored.
func (r *Repository) LoadCategories(ctx context.Context) ([]string, error) {
	db, err := r.conn(false)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, core.ErrNoCategoryFile
	}
	if ok, err := r.hasTable(ctx, db, "categories"); err != nil {
		return nil, err
	} else if !ok {
		return nil, core.ErrNoCategoryFile
	}

	rows, err := db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, core.ErrNoCategoryFile
	}
	return categories, nil
}

func (r *Repository) saveCategories(ctx context.Context, db *sql.DB, categories []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	for i, name := range categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}
	return tx.Commit()
}

var _ core.Repository = (*Repository)(nil)

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultWatchPattern matches every data file a repository may own.
const DefaultWatchPattern = "*.{json,yaml,yml,db}"

// Store handles every operation on the recipe collection.
//
// Each operation is a full read of the repository, an in-memory transform and,
// for mutations, a full rewrite. Mutations are serialised per Store so that
// concurrent callers in one process cannot interleave their read-modify-write.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	stateMu   sync.RWMutex
	writes    int
	lastWrite *time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report degraded reads.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a new Store over repo.
func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo:   repo,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the underlying repository.
func (s *Store) Repository() Repository {
	return s.repo
}

// Initialize prepares the backing storage (directory, seed files, schema).
func (s *Store) Initialize(ctx context.Context) error {
	return s.repo.Initialize(ctx)
}

// Load returns every recipe in storage order.
// It never fails: unreadable or corrupt data is logged and yields an empty slice.
func (s *Store) Load(ctx context.Context) []Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) []Recipe {
	recipes, err := s.repo.LoadRecipes(ctx)
	if err != nil {
		s.logger.Warn("failed to load recipes, using empty set", "error", err)
		return []Recipe{}
	}
	if recipes == nil {
		return []Recipe{}
	}
	return recipes
}

// Save replaces the whole collection with recipes.
func (s *Store) Save(ctx context.Context, recipes []Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, recipes)
}

func (s *Store) save(ctx context.Context, recipes []Recipe) error {
	if recipes == nil {
		recipes = []Recipe{}
	}
	if err := s.repo.SaveRecipes(ctx, recipes); err != nil {
		if errors.Is(err, ErrReadOnly) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.recordWrite()
	return nil
}

// Add appends a new recipe built from d.
// The id is the highest existing id plus one (1 on an empty store) and
// created_at is set to the current time. The Store does not validate d.
func (s *Store) Add(ctx context.Context, d Draft) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.load(ctx)
	r := Recipe{
		ID:           nextID(recipes),
		Name:         d.Name,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		Category:     d.Category,
		CreatedAt:    s.timestamp(),
	}
	recipes = append(recipes, r)

	if err := s.save(ctx, recipes); err != nil {
		return Recipe{}, err
	}
	return r, nil
}

// Get returns the recipe with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.load(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return Recipe{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Update replaces the mutable fields of the recipe with the given id and
// stamps updated_at. It returns ErrNotFound when no such recipe exists.
func (s *Store) Update(ctx context.Context, id int, d Draft) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.load(ctx)
	for i := range recipes {
		if recipes[i].ID != id {
			continue
		}
		recipes[i].Name = d.Name
		recipes[i].Ingredients = d.Ingredients
		recipes[i].Instructions = d.Instructions
		recipes[i].Category = d.Category
		recipes[i].UpdatedAt = s.timestamp()

		if err := s.save(ctx, recipes); err != nil {
			return Recipe{}, err
		}
		return recipes[i], nil
	}
	return Recipe{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Delete removes the recipe with the given id, keeping the order of the rest.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.load(ctx)
	kept := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recipes) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.save(ctx, kept)
}

// Categories returns the stored category list, or DefaultCategories when none is stored.
// Blank and duplicate names are dropped; order is preserved.
func (s *Store) Categories(ctx context.Context) []string {
	stored, err := s.repo.LoadCategories(ctx)
	if err != nil && !errors.Is(err, ErrNoCategoryFile) {
		s.logger.Warn("failed to load categories, using defaults", "error", err)
	}

	seen := make(map[string]bool, len(stored))
	categories := make([]string, 0, len(stored))
	for _, c := range stored {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}

	if len(categories) == 0 {
		return append([]string(nil), DefaultCategories...)
	}
	return categories
}

// Search returns the recipes whose name, ingredients or category contain term,
// ignoring case. A blank term returns every recipe.
func (s *Store) Search(ctx context.Context, term string) []Recipe {
	recipes := s.Load(ctx)
	m := newMatcher(term)
	if m.empty() {
		return recipes
	}

	matches := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if m.match(r.Name) || m.match(r.Ingredients) || m.match(r.Category) {
			matches = append(matches, r)
		}
	}
	return matches
}

// ByCategory returns the recipes whose category equals category exactly.
func (s *Store) ByCategory(ctx context.Context, category string) []Recipe {
	recipes := s.Load(ctx)
	matches := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Category == category {
			matches = append(matches, r)
		}
	}
	return matches
}

// Watch observes external changes of the data files if the repository supports it.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx, DefaultWatchPattern)
}

func (s *Store) timestamp() string {
	return s.now().Format(TimestampLayout)
}

func (s *Store) recordWrite() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	now := s.now()
	s.writes++
	s.lastWrite = &now
}

func nextID(recipes []Recipe) int {
	maxID := 0
	for _, r := range recipes {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

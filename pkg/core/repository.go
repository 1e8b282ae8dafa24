package core

import "context"

// Repository defines the contract for storing and retrieving the recipe set.
// Every call works on the whole collection: implementations read or replace
// all records at once, there are no partial updates.
type Repository interface {
	// LoadRecipes returns all records in storage order.
	// A missing backing file yields an empty slice and no error.
	LoadRecipes(ctx context.Context) ([]Recipe, error)

	// SaveRecipes replaces the stored records with the given slice.
	SaveRecipes(ctx context.Context, recipes []Recipe) error

	// LoadCategories returns the stored category list.
	// It returns ErrNoCategoryFile when nothing has been stored yet.
	LoadCategories(ctx context.Context) ([]string, error)

	// Initialize ensures the underlying storage is ready (e.g. create directories, seed files, schema).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	// Watch emits an Event for every change of a data file matching pattern.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

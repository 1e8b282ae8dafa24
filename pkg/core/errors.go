package core

import (
	"errors"
	"strings"
)

// Common errors.
var (
	ErrNotFound       = errors.New("recipe not found")
	ErrPersist        = errors.New("failed to persist recipes")
	ErrReadOnly       = errors.New("store is in read-only mode")
	ErrNotWatchable   = errors.New("repository does not support watching")
	ErrNoCategoryFile = errors.New("category file not found")
)

// ValidationError lists the human-readable problems found in a Draft.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid recipe: " + strings.Join(e.Problems, " ")
}

package sqlite

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	DBPath   string     `json:"db_path"`
	Open     bool       `json:"open"`
	ReadOnly bool       `json:"read_only"`
	LastSave *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RepositoryState{
		DBPath:   r.DBPath(),
		Open:     r.db != nil,
		ReadOnly: r.config.ReadOnly,
		LastSave: r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

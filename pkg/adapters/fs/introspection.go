package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path           string     `json:"path"`
	RecipesFile    string     `json:"recipes_file"`
	CategoriesFile string     `json:"categories_file"`
	ReadOnly       bool       `json:"read_only"`
	Serializers    []string   `json:"serializers"`
	WatcherActive  bool       `json:"watcher_active"`
	LastSave       *time.Time `json:"last_save,omitempty"`
	LastEvent      *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}

	return RepositoryState{
		Path:           r.Path,
		RecipesFile:    r.RecipesPath(),
		CategoriesFile: r.CategoriesPath(),
		ReadOnly:       r.config.ReadOnly,
		Serializers:    serializers,
		WatcherActive:  r.watcherActive,
		LastSave:       r.lastSave,
		LastEvent:      r.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordEvent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastEvent = &now
}

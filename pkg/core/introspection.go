package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	RepositoryType string     `json:"repository_type"`
	Watchable      bool       `json:"watchable"`
	Writes         int        `json:"writes"`
	LastWrite      *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}
	_, watchable := s.repo.(Watchable)

	return StoreState{
		RepositoryType: repoType,
		Watchable:      watchable,
		Writes:         s.writes,
		LastWrite:      s.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

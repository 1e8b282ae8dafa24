// Package lifecycle exposes store change notifications as a lifecycle.Source.
package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/pantry/pkg/core"
)

// Watcher is the part of core.Store the source needs.
type Watcher interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
}

// ErrStarted is returned when Start is called more than once.
var ErrStarted = errors.New("source already started")

type storeSource struct {
	watcher Watcher
	out     chan lifecycle.Event
	started atomic.Bool
}

// NewSource creates a lifecycle.Source that emits the data file changes seen by w.
// core.Event satisfies lifecycle.Event through its String method.
func NewSource(w Watcher) lifecycle.Source {
	return &storeSource{
		watcher: w,
		out:     make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. It fails with core.ErrNotWatchable when the
// repository cannot be observed; otherwise Events is closed once ctx ends.
// A source runs once: later calls return ErrStarted.
func (s *storeSource) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	events, err := s.watcher.Watch(ctx)
	if err != nil {
		close(s.out)
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

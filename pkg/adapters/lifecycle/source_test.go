package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pantry/pkg/adapters/lifecycle"
	"github.com/aretw0/pantry/pkg/core"
)

type fakeWatcher struct {
	events chan core.Event
	err    error
}

func (f *fakeWatcher) Watch(ctx context.Context) (<-chan core.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func TestSource(t *testing.T) {
	t.Run("Forwards Events", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := &fakeWatcher{events: make(chan core.Event, 1)}
		src := lifecycle.NewSource(w)
		require.NoError(t, src.Start(ctx))

		w.events <- core.Event{Type: core.EventModify, Path: "data/recipes.json"}

		select {
		case e := <-src.Events():
			assert.Equal(t, "MODIFY data/recipes.json", e.String())
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	})

	t.Run("Closes When Upstream Closes", func(t *testing.T) {
		w := &fakeWatcher{events: make(chan core.Event)}
		src := lifecycle.NewSource(w)
		require.NoError(t, src.Start(context.Background()))

		close(w.events)
		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("events channel not closed")
		}
	})

	t.Run("Not Watchable", func(t *testing.T) {
		src := lifecycle.NewSource(&fakeWatcher{err: core.ErrNotWatchable})
		err := src.Start(context.Background())
		assert.ErrorIs(t, err, core.ErrNotWatchable)

		_, ok := <-src.Events()
		assert.False(t, ok)
	})
}

func TestSource_StartOnce(t *testing.T) {
	t.Run("After Failure", func(t *testing.T) {
		src := lifecycle.NewSource(&fakeWatcher{err: core.ErrNotWatchable})
		require.ErrorIs(t, src.Start(context.Background()), core.ErrNotWatchable)

		assert.NotPanics(t, func() {
			assert.ErrorIs(t, src.Start(context.Background()), lifecycle.ErrStarted)
		})
	})

	t.Run("While Running", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		src := lifecycle.NewSource(&fakeWatcher{events: make(chan core.Event)})
		require.NoError(t, src.Start(ctx))
		assert.ErrorIs(t, src.Start(ctx), lifecycle.ErrStarted)
	})
}

package fs

import (
	"sync"
	"time"

	"github.com/aretw0/pantry/pkg/core"
)

// debouncer coalesces bursts of events on the same path into the last one.
// An atomic save produces several fsnotify events (create, write, rename);
// callers only care that the file changed.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
	seq   uint64
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules emit for event once no newer event for the same path arrives
// within the window.
func (d *debouncer) add(event core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	p, ok := d.pending[event.Path]
	if !ok {
		p = &pendingEvent{}
		d.pending[event.Path] = p
	}
	if p.timer != nil && p.timer.Stop() {
		d.wg.Done()
	}

	p.event = event
	p.seq++
	seq := p.seq

	d.wg.Add(1)
	p.timer = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		cur, ok := d.pending[event.Path]
		if !ok || cur.seq != seq || d.stopped {
			d.mu.Unlock()
			return
		}
		e := cur.event
		delete(d.pending, event.Path)
		d.mu.Unlock()

		emit(e)
	})
}

// stopAndWait drops pending events and waits up to timeout for in-flight emits.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for path, p := range d.pending {
		if p.timer != nil && p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, path)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/pantry/pkg/core"
)

// Watch reports changes of the data files whose base name matches pattern
// (a doublestar glob such as "*.{json,yaml}"). The store's own saves are
// reported too. The returned channel is closed once ctx is cancelled.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range r.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	events := make(chan core.Event, r.config.EventBuffer)
	w := &watchLoop{
		repo:      r,
		pattern:   pattern,
		watcher:   watcher,
		events:    events,
		debouncer: newDebouncer(r.config.Debounce),
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

func (r *Repository) watchDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range []string{r.RecipesPath(), r.CategoriesPath()} {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (r *Repository) reportError(err error) {
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}
	r.config.Logger.Error("watcher error", "error", err)
}

type watchLoop struct {
	repo      *Repository
	pattern   string
	watcher   *fsnotify.Watcher
	events    chan core.Event
	debouncer *debouncer
}

func (w *watchLoop) run(ctx context.Context) (err error) {
	logger := w.repo.config.Logger

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
		w.debouncer.stopAndWait(5 * time.Second)
		close(w.events)
	}()
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.reportError(wErr)
		}
	}
}

func (w *watchLoop) handle(ctx context.Context, event fsnotify.Event) {
	if w.shouldIgnore(event) {
		return
	}
	eType := mapEventType(event)
	if eType == "" {
		return
	}

	w.repo.config.Logger.Debug("data file changed", "op", event.Op.String(), "path", event.Name)
	w.repo.recordEvent()

	w.debouncer.add(core.Event{
		Type:      eType,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchLoop) shouldIgnore(event fsnotify.Event) bool {
	if isTempFile(event.Name) {
		return true
	}
	matched, err := doublestar.Match(w.pattern, filepath.Base(event.Name))
	return err != nil || !matched
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

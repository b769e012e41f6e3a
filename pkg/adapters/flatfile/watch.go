package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/quackstagram/quackstore/pkg/core"
)

// Watcher emits change events for the backing files of one data
// directory. Useful for a display surface that wants to refresh when
// another window, or an external tool, rewrites a file.
type Watcher struct {
	dir     string
	pattern string
	logger  *slog.Logger

	events chan core.Event
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewWatcher creates a watcher over dir. pattern is a doublestar glob
// matched against file names relative to dir; the empty pattern matches
// everything. A nil logger falls back to slog.Default().
func NewWatcher(dir, pattern string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: dir, pattern: pattern, logger: logger}
}

// Start begins watching and returns the event channel. Events are
// debounced so one logical rewrite does not show up as a burst. The
// channel closes when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan core.Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.events = make(chan core.Event, 16)

	g, runCtx := errgroup.WithContext(runCtx)
	w.group = g
	g.Go(func() error {
		return w.run(runCtx, fsw)
	})

	return w.events, nil
}

// Stop terminates the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.group != nil {
		return w.group.Wait()
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) error {
	defer fsw.Close()
	defer close(w.events)

	debounce := newDebouncer(50 * time.Millisecond)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event, debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event, debounce *debouncer) {
	name, err := filepath.Rel(w.dir, event.Name)
	if err != nil {
		return
	}
	name = filepath.ToSlash(name)

	// Our own atomic writes surface first as temp-file churn.
	if strings.HasPrefix(filepath.Base(name), tempFilePrefix) {
		return
	}

	if w.pattern != "" {
		if ok, err := doublestar.Match(w.pattern, name); err != nil || !ok {
			return
		}
	}

	var typ core.EventType
	switch {
	case event.Has(fsnotify.Create):
		typ = core.EventCreate
	case event.Has(fsnotify.Write):
		typ = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		typ = core.EventDelete
	default:
		return
	}

	if !debounce.allow(name, typ) {
		return
	}

	select {
	case w.events <- core.Event{Type: typ, Name: name, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}

// debouncer drops repeats of the same event within the window.
type debouncer struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		last:   make(map[string]time.Time),
	}
}

func (d *debouncer) allow(name string, typ core.EventType) bool {
	key := name + "|" + string(typ)
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if seen, ok := d.last[key]; ok && now.Sub(seen) < d.window {
		return false
	}
	d.last[key] = now
	return true
}

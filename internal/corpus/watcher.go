package corpus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for further changes before
// reporting.
const DefaultDebounce = 300 * time.Millisecond

// Event reports that corpus files changed.
type Event struct {
	// Paths are the changed corpus files, in the order first seen.
	Paths []string
}

// Watcher reports changes to the files selected by a Source.
type Watcher struct {
	source   *Source
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	events   chan Event

	started  atomic.Bool
	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher for source. A zero debounce uses
// DefaultDebounce.
func NewWatcher(source *Source, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		source:   source,
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		events:   make(chan Event, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Events returns the channel of change events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start adds watches for the source directories and begins processing
// events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := w.source.WatchDirs()
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch corpus directory", zap.String("path", dir), zap.Error(err))
			continue
		}
		w.logger.Debug("Watching corpus directory", zap.String("path", dir))
	}

	w.started.Store(true)
	go w.processEvents(ctx)

	w.logger.Debug("Corpus watcher started", zap.Int("dirs", len(dirs)), zap.Duration("debounce", w.debounce))
	return nil
}

// Stop closes the watcher and waits for the event goroutine to exit. It is
// safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.quit)
		err = w.watcher.Close()
		if w.started.Load() {
			<-w.done
		}
	})
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	var pending []string
	pendingSet := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.quit:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if !pendingSet[event.Name] {
				pendingSet[event.Name] = true
				pending = append(pending, event.Name)
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Corpus watcher error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			ev := Event{Paths: pending}
			pending = nil
			pendingSet = make(map[string]bool)

			select {
			case w.events <- ev:
				w.logger.Debug("Corpus changed", zap.Strings("paths", ev.Paths))
			case <-ctx.Done():
				return
			case <-w.quit:
				return
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.source.Matches(event.Name)
}

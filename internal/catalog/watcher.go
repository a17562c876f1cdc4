package catalog

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that a watched fixture file was written, created, or removed.
type Change struct {
	Path    string
	Removed bool
}

// Watcher monitors a fixture file for edits. It watches the parent directory
// because editors often replace files instead of writing in place.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// watchDebounce coalesces bursts of events from a single save.
const watchDebounce = 100 * time.Millisecond

// NewWatcher creates a watcher for the fixture at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan Change, 4)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		pending  bool
		removed  bool
		lastSeen time.Time
	)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				pending, removed = true, true
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				pending, removed = true, false
			default:
				continue
			}
			lastSeen = time.Now()

		case <-ticker.C:
			if pending && time.Since(lastSeen) >= watchDebounce {
				w.emit(Change{Path: w.Path, Removed: removed})
				pending = false
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// emit delivers a change without blocking the watch loop; a full buffer
// already holds a pending reload.
func (w *Watcher) emit(c Change) {
	select {
	case w.changes <- c:
	default:
	}
}

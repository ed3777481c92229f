// Package watch detects external changes to the files backing open
// documents. It watches each file's parent directory (editors commonly
// save via rename, which a direct file watch would lose) and debounces
// bursts of write events into a single notification.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quill/internal/app"
)

// Errors returned by the watcher.
var (
	ErrClosed          = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already watched")
	ErrNotWatching     = errors.New("path is not watched")
)

// Kind classifies a file event.
type Kind uint8

const (
	// Changed means the file content was written or replaced.
	Changed Kind = iota
	// Removed means the file was deleted or renamed away.
	Removed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k == Removed {
		return "removed"
	}
	return "changed"
}

// Event is a debounced notification about one tracked file.
type Event struct {
	Path string
	Kind Kind
}

// Config holds watcher settings.
type Config struct {
	// Debounce coalesces write bursts within this window.
	Debounce time.Duration
	// BufferSize is the event channel capacity.
	BufferSize int
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   100 * time.Millisecond,
		BufferSize: 64,
	}
}

// Option configures a Watcher.
type Option func(*Config)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Debounce = d
		}
	}
}

// WithBufferSize sets the event channel capacity.
func WithBufferSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.BufferSize = n
		}
	}
}

// Watcher tracks individual files via their parent directories.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	config Config
	logger *app.Logger

	// files maps tracked absolute file paths to true.
	files map[string]bool
	// dirs refcounts watched parent directories.
	dirs map[string]int
	// pending holds the per-path debounce timers.
	pending map[string]*time.Timer

	events chan Event
	errs   chan error

	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(logger *app.Logger, opts ...Option) (*Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if logger == nil {
		logger = app.NullLogger
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		config:  config,
		logger:  logger.WithComponent("watch"),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		pending: make(map[string]*time.Timer),
		events:  make(chan Event, config.BufferSize),
		errs:    make(chan error, config.BufferSize),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the channel of debounced file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Add starts tracking a file.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.files[abs] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	w.logger.Debug("watching %s", abs)
	return nil
}

// Remove stops tracking a file.
func (w *Watcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[abs] {
		return ErrNotWatching
	}
	delete(w.files, abs)

	if t, ok := w.pending[abs]; ok {
		t.Stop()
		delete(w.pending, abs)
	}

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir)
	}
	return nil
}

// Close stops the watcher and releases its resources. Safe to call
// more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	close(w.done)
	w.mu.Unlock()

	// The event channels stay open: a stopped timer may still be
	// mid-fire, and emit's closed check keeps it from delivering.
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
				// Drop rather than block the loop.
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[abs] {
		return
	}

	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		// A rename may be half of an atomic save; the debounce window
		// lets the follow-up Create collapse it back to Changed.
		w.schedule(abs, Removed)
	case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
		w.schedule(abs, Changed)
	}
}

// schedule arms (or rearms) the debounce timer for a path. Callers
// hold w.mu.
func (w *Watcher) schedule(path string, kind Kind) {
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.config.Debounce, func() {
		w.emit(path, kind)
	})
}

func (w *Watcher) emit(path string, kind Kind) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	select {
	case w.events <- Event{Path: path, Kind: kind}:
	default:
		w.logger.Warn("event channel full, dropping %s for %s", kind, path)
	}
}

package loader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	schematype "github.com/reoring/schematype"
)

// Watcher reports schema file changes so callers can invalidate cached
// translations. Watching the containing directory is more reliable than
// watching the file itself: editors doing atomic saves replace the inode.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	files    map[string]schematype.Identity // base name -> identity, per watched dir
	onChange []func(schematype.Identity)
	stopCh   chan struct{}
}

// NewWatcher creates a watcher. Call Add for each schema file, then Start.
func NewWatcher(logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		watcher: fw,
		logger:  logger,
		files:   map[string]schematype.Identity{},
		stopCh:  make(chan struct{}),
	}, nil
}

// Add registers a schema file for change notifications.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	w.mu.Lock()
	w.files[abs] = schematype.FileIdentity(abs)
	w.mu.Unlock()
	w.logger.Info().Str("path", abs).Msg("watching schema file for changes")
	return nil
}

// OnChange registers a callback invoked with the identity of a changed schema.
// Typical wiring: func(id) { cache.Invalidate(id) }.
func (w *Watcher) OnChange(fn func(schematype.Identity)) {
	w.mu.Lock()
	w.onChange = append(w.onChange, fn)
	w.mu.Unlock()
}

// Start launches the watch loop.
func (w *Watcher) Start() { go w.watchLoop() }

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// React to write or create (atomic save = create).
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			id, watched := w.files[abs]
			callbacks := append([]func(schematype.Identity){}, w.onChange...)
			w.mu.Unlock()
			if !watched {
				continue
			}
			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", abs).
				Msg("schema file changed")
			for _, fn := range callbacks {
				fn(id)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("schema watcher error")

		case <-w.stopCh:
			return
		}
	}
}

// Package watch re-documents source files as they change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/docgen/pkg/batch"
	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/util"
)

// Options configures a Watcher.
type Options struct {
	// Debounce groups rapid changes to one file into a single parse.
	// Default: 200ms
	Debounce time.Duration

	// Files selects which files are watched and how they are parsed. Its
	// Extensions, Exclude, Ignore, Parse, Reader and Logger fields are used.
	Files batch.Options

	// Invalidate is called with every changed or removed path before it is
	// re-parsed, so importer caches can drop stale modules.
	Invalidate func(path string)
}

// Event reports a re-parsed or removed file.
type Event struct {
	Path    string
	Result  *batch.FileResult // nil when Removed
	Removed bool
	Time    time.Time
}

// Handler receives watch events. It is called from timer goroutines, one
// file at a time per path.
type Handler func(Event)

// Watcher watches directory trees and re-parses changed source files.
//
// Usage:
//
//	w, err := watch.New(options, func(ev watch.Event) { ... })
//	if err != nil {
//	    return err
//	}
//	if err := w.Start("src"); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	watcher *fsnotify.Watcher
	options Options
	handler Handler
	reader  util.SourceReader
	logger  *slog.Logger

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// digests holds the content hash of the last parse of each file.
	digests   map[string]uint64
	digestsMu sync.Mutex

	stats   Stats
	statsMu sync.Mutex

	ctx      context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// Stats contains watcher statistics.
type Stats struct {
	Parsed          int64
	Unchanged       int64
	Removed         int64
	PendingReparses int
	IsRunning       bool
}

// New creates a watcher that reports to handler.
func New(options Options, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.Debounce <= 0 {
		options.Debounce = 200 * time.Millisecond
	}
	logger := options.Files.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reader := options.Files.Reader
	if reader == nil {
		reader = util.NewSourceReader(&util.SourceReaderConfig{
			MaxFileBytes: util.DefaultSourceReaderConfig().MaxFileBytes,
			Logger:       logger,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:        fsw,
		options:        options,
		handler:        handler,
		reader:         reader,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		digests:        make(map[string]uint64),
		ctx:            ctx,
		cancel:         cancel,
		stopChan:       make(chan struct{}),
		done:           make(chan struct{}),
	}, nil
}

// Seed records already-documented content so that writes which leave a
// file's content unchanged are skipped.
func (w *Watcher) Seed(report *batch.Report) {
	w.digestsMu.Lock()
	defer w.digestsMu.Unlock()
	for path, res := range report.Files {
		if res.Err == nil {
			w.digests[path] = res.Digest
		}
	}
}

// Start watches every directory under roots and begins processing events.
func (w *Watcher) Start(roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	w.started = true
	w.logger.Info("File watcher started", "roots", roots)

	go w.eventLoop()
	return nil
}

// addTree watches root and its non-ignored subdirectories.
func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		// fsnotify watches files through their directory.
		return w.watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.options.Files.Ignores(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	w.cancel()

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	w.logger.Info("File watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.options.Files.Ignores(filepath.Base(path)) {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("Failed to watch directory", "path", path, "error", err)
				}
			}
			return
		}
	}
	if !w.options.Files.Wants(path) {
		return
	}

	w.logger.Debug("File event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		w.debounce(path)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.remove(path)
	}
}

// debounce schedules a parse after the debounce delay. Later events for the
// same file within the window push the parse back.
func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.reparse(path)
	})
}

func (w *Watcher) reparse(path string) {
	if w.ctx.Err() != nil {
		return
	}
	src, err := w.reader.Read(path)
	if err != nil {
		w.logger.Warn("Failed to read file", "file", path, "error", err)
		return
	}

	w.digestsMu.Lock()
	last, seen := w.digests[path]
	w.digests[path] = src.Digest
	w.digestsMu.Unlock()
	if seen && last == src.Digest {
		w.logger.Debug("File unchanged", "file", path)
		w.count(func(s *Stats) { s.Unchanged++ })
		return
	}

	if w.options.Invalidate != nil {
		w.options.Invalidate(path)
	}

	opts := append(append([]docgen.Option{}, w.options.Files.Parse...), docgen.WithFilename(path))
	docs, err := docgen.Parse(w.ctx, src.Data, opts...)
	result := &batch.FileResult{Path: path, Docs: docs, Err: err, Digest: src.Digest}
	if err != nil {
		w.logger.Warn("File processing failed", "file", path, "error", err)
	}
	w.count(func(s *Stats) { s.Parsed++ })
	w.handler(Event{Path: path, Result: result, Time: time.Now()})
}

func (w *Watcher) remove(path string) {
	w.debounceMu.Lock()
	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
		delete(w.debounceTimers, path)
	}
	w.debounceMu.Unlock()

	w.digestsMu.Lock()
	delete(w.digests, path)
	w.digestsMu.Unlock()

	if w.options.Invalidate != nil {
		w.options.Invalidate(path)
	}
	w.count(func(s *Stats) { s.Removed++ })
	w.handler(Event{Path: path, Removed: true, Time: time.Now()})
}

func (w *Watcher) count(update func(*Stats)) {
	w.statsMu.Lock()
	update(&w.stats)
	w.statsMu.Unlock()
}

// GetStats returns watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.statsMu.Lock()
	stats := w.stats
	w.statsMu.Unlock()

	w.debounceMu.Lock()
	stats.PendingReparses = len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	stats.IsRunning = w.started && !w.stopped
	w.mu.Unlock()
	return stats
}

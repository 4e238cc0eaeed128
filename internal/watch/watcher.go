// SPDX-License-Identifier: MPL-2.0

// Package watch keeps generated route-map output synchronized with a
// commands directory.
//
// A Watcher subscribes to filesystem events under the commands directory,
// coalesces bursts of changes with a debounce timer, and triggers one
// regeneration pass per quiet period. Newly created empty files can be
// populated with starter content before the change is queued.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last filesystem event before
// a regeneration pass runs. Editors typically emit several events per save
// (write, chmod, rename of a temp file); the debounce collapses them into a
// single pass.
const DefaultDebounce = 100 * time.Millisecond

// Watcher lifecycle states. Transitions are one-way:
// idle → watching → stopped.
const (
	stateIdle int32 = iota
	stateWatching
	stateStopped
)

// defaultIgnores are always excluded from watching: dotfiles, generated
// output modules, and editor swap noise. Regenerated output must never feed
// back into the watcher.
var defaultIgnores = []string{
	".*",
	"**/.*",
	"*.gen.ts",
	"**/*.gen.ts",
	"*.swp",
	"**/*.swp",
	"*~",
	"**/*~",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// CommandsDir is the directory to watch. Required.
		CommandsDir string

		// Ignore are additional doublestar glob patterns (relative to
		// CommandsDir) that never trigger regeneration. Merged with the
		// built-in defaults.
		Ignore []string

		// Debounce is the quiet period before regeneration. Zero or
		// negative falls back to DefaultDebounce.
		Debounce time.Duration

		// OnChange runs one regeneration pass. It receives the captured
		// list of changed paths (relative to CommandsDir; nil for the
		// initial pass at Start). Required. Errors are logged and the
		// watch session continues.
		OnChange func(changed []string) error

		// OnCreate, when set, is invoked for every newly added file before
		// its change is queued. Stub population hooks in here; errors are
		// logged and do not block the change.
		OnCreate func(path string) error

		// Logger receives watch-session diagnostics. nil falls back to the
		// default logger.
		Logger *log.Logger
	}

	// Watcher debounces filesystem changes under one commands directory and
	// serializes regeneration passes. Multiple independent watchers do not
	// share state and may run concurrently, each owning its own output.
	Watcher struct {
		cfg      Config
		baseDir  string
		ignores  []string
		debounce time.Duration
		logger   *log.Logger

		state atomic.Int32

		mu      sync.Mutex // guards pending, queued, timer
		pending []string
		queued  map[string]struct{}
		timer   *time.Timer

		// runMu serializes regeneration passes and lets Stop wait out an
		// in-flight pass, guaranteeing no writes happen after Stop returns.
		runMu sync.Mutex

		fsw      *fsnotify.Watcher
		done     chan struct{}
		loopDone chan struct{}
	}
)

// New validates the configuration and returns an idle Watcher. Constraint
// violations (missing commands directory path, missing callback, invalid
// ignore pattern) are hard errors, never silently defaulted.
func New(cfg Config) (*Watcher, error) {
	if strings.TrimSpace(cfg.CommandsDir) == "" {
		return nil, fmt.Errorf("watch: commands directory is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("watch: OnChange callback is required")
	}
	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pat)
		}
	}

	baseDir, err := filepath.Abs(cfg.CommandsDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve commands directory: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	return &Watcher{
		cfg:      cfg,
		baseDir:  baseDir,
		ignores:  ignores,
		debounce: debounce,
		logger:   logger,
		queued:   make(map[string]struct{}),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

// Start runs one synchronous initial generation, subscribes to filesystem
// events under the commands directory, and begins the event loop.
// Subscription failure is a hard error; an initial generation failure is
// logged and the session starts anyway (the next save retriggers it).
func (w *Watcher) Start() error {
	if !w.state.CompareAndSwap(stateIdle, stateWatching) {
		return fmt.Errorf("watch: Start called on a non-idle watcher")
	}

	if err := w.cfg.OnChange(nil); err != nil {
		w.logger.Error("initial generation failed", "err", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.state.Store(stateStopped)
		return fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.addDirectories(); err != nil {
		w.state.Store(stateStopped)
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Error("close after failed subscribe", "err", closeErr)
		}
		return err
	}

	go w.loop()
	return nil
}

// Stop ends the watch session: it cancels any pending debounce timer,
// unsubscribes, and waits for an in-flight regeneration pass to finish.
// After Stop returns no further regeneration (and therefore no write) can
// occur. Stop is idempotent and safe to call on a never-started watcher.
func (w *Watcher) Stop() {
	prev := w.state.Swap(stateStopped)
	if prev == stateStopped {
		return
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if prev == stateWatching {
		close(w.done)
		if err := w.fsw.Close(); err != nil {
			w.logger.Error("close fsnotify", "err", err)
		}
		<-w.loopDone
	}

	// Wait out any regeneration pass that was already past the state check.
	w.runMu.Lock()
	w.runMu.Unlock() //nolint:staticcheck // empty critical section: the lock is the barrier
}

// loop processes filesystem events until Stop.
func (w *Watcher) loop() {
	defer close(w.loopDone)

	for {
		select {
		case <-w.done:
			return

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(evt)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if isFatalFsnotifyError(err) {
				w.logger.Error("fatal watch error, session is dead", "err", err)
				return
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

// handleEvent filters one fsnotify event, runs the creation hook, and queues
// the change behind the debounce timer.
func (w *Watcher) handleEvent(evt fsnotify.Event) {
	rel, err := filepath.Rel(w.baseDir, evt.Name)
	if err != nil {
		rel = evt.Name
	}

	if w.isIgnored(rel) {
		return
	}

	if evt.Has(fsnotify.Create) {
		w.maybeAddDir(evt.Name)
		if w.cfg.OnCreate != nil && isRegularFile(evt.Name) {
			if hookErr := w.cfg.OnCreate(evt.Name); hookErr != nil {
				w.logger.Error("creation hook failed", "file", evt.Name, "err", hookErr)
			}
		}
	}

	w.mu.Lock()
	if _, dup := w.queued[rel]; !dup {
		w.queued[rel] = struct{}{}
		w.pending = append(w.pending, rel)
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

// fire is the debounce timer callback: it atomically captures and clears the
// pending change list and runs one regeneration pass. Passes are strictly
// serialized by runMu, and a stopped watcher never regenerates.
func (w *Watcher) fire() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if w.state.Load() != stateWatching {
		return
	}

	w.mu.Lock()
	changed := w.pending
	w.pending = nil
	w.queued = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}

	w.logger.Debug("regenerating", "changes", len(changed))
	if err := w.cfg.OnChange(changed); err != nil {
		// A bad regeneration must not end the watch session; the operator
		// fixes the input and saves again.
		w.logger.Error("regeneration failed", "err", err)
	}
}

// addDirectories registers the commands directory and every non-ignored
// subdirectory with the fsnotify watcher.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
			return nil //nolint:nilerr // inaccessible subtrees are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if rel != "." && w.isIgnored(rel) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: subscribe %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk commands directory: %w", walkErr)
	}
	return nil
}

// maybeAddDir extends the subscription to directories created after Start.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("subscribe new directory", "path", path, "err", addErr)
	}
}

// isIgnored reports whether rel (relative to the commands directory) matches
// any ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// isRegularFile reports whether path currently exists and is a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

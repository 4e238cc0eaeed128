// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// recorder collects OnChange invocations.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	fired chan struct{} // receives one value per non-initial call
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) onChange(changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	if changed != nil {
		r.fired <- struct{}{}
	}
	return nil
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	onChange := func([]string) error { return nil }

	if _, err := New(Config{OnChange: onChange}); err == nil {
		t.Error("expected error for missing commands directory")
	}
	if _, err := New(Config{CommandsDir: t.TempDir()}); err == nil {
		t.Error("expected error for missing OnChange callback")
	}
	if _, err := New(Config{CommandsDir: t.TempDir(), OnChange: onChange, Ignore: []string{"[broken"}}); err == nil {
		t.Error("expected error for invalid ignore pattern")
	}
	if _, err := New(Config{CommandsDir: t.TempDir(), OnChange: onChange}); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestStartRunsInitialGeneration(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	w, err := New(Config{
		CommandsDir: t.TempDir(),
		OnChange:    rec.onChange,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != nil {
		t.Errorf("expected one initial nil-change generation, got %v", calls)
	}

	if err := w.Start(); err == nil {
		t.Error("second Start must fail")
	}
}

// TestDebounceCoalescing writes three files inside one debounce window and
// expects exactly one regeneration pass carrying all three paths.
func TestDebounceCoalescing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		CommandsDir: dir,
		Debounce:    100 * time.Millisecond,
		OnChange:    rec.onChange,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("export {};\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		time.Sleep(30 * time.Millisecond)
	}

	select {
	case <-rec.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for debounced regeneration")
	}
	// Settle to catch an (unwanted) second pass.
	time.Sleep(250 * time.Millisecond)

	calls := rec.snapshot()
	// calls[0] is the initial generation.
	var passes [][]string
	for _, c := range calls {
		if c != nil {
			passes = append(passes, c)
		}
	}
	if len(passes) != 1 {
		t.Fatalf("expected exactly one debounced pass, got %d: %v", len(passes), passes)
	}

	got := make(map[string]bool, len(passes[0]))
	for _, p := range passes[0] {
		got[filepath.ToSlash(p)] = true
	}
	for _, want := range []string{"a.ts", "b.ts", "c.ts"} {
		if !got[want] {
			t.Errorf("pass missing changed path %q (got %v)", want, passes[0])
		}
	}
}

func TestStopIdempotentAndSilencesCallbacks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		CommandsDir: dir,
		Debounce:    50 * time.Millisecond,
		OnChange:    rec.onChange,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Queue a change, then stop before the debounce window closes.
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop() // idempotent

	before := len(rec.snapshot())
	time.Sleep(200 * time.Millisecond)
	if after := len(rec.snapshot()); after != before {
		t.Errorf("callback ran after Stop: %d -> %d calls", before, after)
	}
}

func TestStopOnIdleWatcher(t *testing.T) {
	t.Parallel()

	w, err := New(Config{
		CommandsDir: t.TempDir(),
		OnChange:    func([]string) error { return nil },
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	w.Stop()
	w.Stop()

	if err := w.Start(); err == nil {
		t.Error("Start after Stop must fail")
		w.Stop()
	}
}

func TestOnCreateHookRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()

	var hookMu sync.Mutex
	var created []string

	w, err := New(Config{
		CommandsDir: dir,
		Debounce:    50 * time.Millisecond,
		OnChange:    rec.onChange,
		OnCreate: func(path string) error {
			hookMu.Lock()
			created = append(created, filepath.Base(path))
			hookMu.Unlock()
			return nil
		},
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "new.lazy.ts"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rec.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for regeneration")
	}

	hookMu.Lock()
	defer hookMu.Unlock()
	found := false
	for _, name := range created {
		if name == "new.lazy.ts" {
			found = true
		}
	}
	if !found {
		t.Errorf("creation hook never saw new.lazy.ts (saw %v)", created)
	}
}

func TestDotfilesAndGeneratedOutputIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		CommandsDir: dir,
		Debounce:    50 * time.Millisecond,
		OnChange:    rec.onChange,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	for _, name := range []string{".hidden.ts", "routes.gen.ts", "x.swp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-rec.fired:
		t.Fatal("ignored files triggered a regeneration pass")
	case <-time.After(300 * time.Millisecond):
	}
}

// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

const testDebounce = 50 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.fired <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// start runs w until the test ends and checks that Run returns cleanly.
func start(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})
	// Let the event loop start before files are touched.
	time.Sleep(20 * time.Millisecond)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{Dirs: []string{dir}, Debounce: testDebounce, OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	start(t, w)

	for _, name := range []string{"vehicle.sdm", "rentals.sdm", "rentals.sdm"} {
		writeFile(t, filepath.Join(dir, name), "module m is end\n")
		time.Sleep(5 * time.Millisecond)
	}
	rec.wait(t)
	time.Sleep(4 * testDebounce)

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("callbacks = %d, want 1: %v", len(calls), calls)
	}
	root := w.Roots()[0]
	want := []string{filepath.Join(root, "rentals.sdm"), filepath.Join(root, "vehicle.sdm")}
	if !slices.Equal(calls[0], want) {
		t.Errorf("changed = %v, want %v", calls[0], want)
	}
}

func TestWatcher_SelectsModuleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		Dirs:     []string{dir},
		Ignore:   []string{"drafts/**"},
		Debounce: testDebounce,
		OnChange: rec.onChange,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "notes.txt"), "not a module")
	writeFile(t, filepath.Join(dir, "drafts", "wip.sdm"), "module wip is end\n")
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(dir, "fleet.sdml"), "module fleet is end\n")
	rec.wait(t)

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("callbacks = %d, want 1: %v", len(calls), calls)
	}
	if len(calls[0]) != 1 || filepath.Base(calls[0][0]) != "fleet.sdml" {
		t.Errorf("changed = %v, want only fleet.sdml", calls[0])
	}
}

func TestWatcher_NewDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{Dirs: []string{dir}, Debounce: testDebounce, OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	start(t, w)

	sub := filepath.Join(dir, "vehicle")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(sub, "vehicle.sdm"), "module vehicle is end\n")

	deadline := time.After(5 * time.Second)
	for {
		for _, call := range rec.snapshot() {
			if slices.ContainsFunc(call, func(p string) bool { return filepath.Base(p) == "vehicle.sdm" }) {
				return
			}
		}
		select {
		case <-rec.fired:
		case <-deadline:
			t.Fatal("file in a new directory was not reported")
		}
	}
}

func TestWatcher_SkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu      sync.Mutex
		active  int
		overlap bool
		calls   int
	)
	fired := make(chan struct{}, 16)
	w, err := New(Config{
		Dirs:     []string{dir},
		Debounce: 20 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			mu.Lock()
			active++
			if active > 1 {
				overlap = true
			}
			calls++
			mu.Unlock()

			time.Sleep(150 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			fired <- struct{}{}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "a.sdm"), "module a is end\n")
	time.Sleep(60 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "b.sdm"), "module b is end\n")

	for range 2 {
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for callbacks")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("OnChange ran concurrently with itself")
	}
	if calls < 2 {
		t.Errorf("calls = %d, want the second change retried", calls)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Dirs: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	start(t, w)

	if err := w.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "no directories",
			cfg:     Config{},
			wantErr: ErrNoDirectories,
		},
		{
			name:    "only missing directories",
			cfg:     Config{Dirs: []string{filepath.Join(dir, "absent")}},
			wantErr: ErrNoDirectories,
		},
		{
			name: "bad watch pattern",
			cfg:  Config{Dirs: []string{dir}, Patterns: []string{"[unclosed"}},
		},
		{
			name: "bad ignore pattern",
			cfg:  Config{Dirs: []string{dir}, Ignore: []string{"{a,b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := New(tt.cfg)
			if err == nil {
				t.Fatalf("New() = %v, want an error", w)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExistingRoots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "models")
	other := filepath.Join(t.TempDir(), "shared")
	for _, d := range []string{nested, other} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	got, err := existingRoots([]string{nested, dir, other, dir, filepath.Join(dir, "absent")})
	if err != nil {
		t.Fatalf("existingRoots() error = %v", err)
	}
	want := []string{dir, other}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("existingRoots() = %v, want %v", got, want)
	}
}

func TestSelects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(Config{Dirs: []string{dir}, Ignore: []string{"**/scratch/**"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.fsw.Close() })
	root := w.Roots()[0]

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "rentals.sdm"), true},
		{filepath.Join(root, "deep", "er", "rentals.sdml"), true},
		{filepath.Join(root, "rentals.sdm.swp"), false},
		{filepath.Join(root, ".git", "config.sdm"), false},
		{filepath.Join(root, "a", "scratch", "x.sdm"), false},
		{filepath.Join(root, "README.md"), false},
		{filepath.Join(filepath.Dir(root), "outside.sdm"), false},
	}

	for _, tt := range tests {
		if got := w.selects(tt.path); got != tt.want {
			t.Errorf("selects(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChanged(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`[{"file":"a.go"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitChanged(t, w, 3*time.Second) {
		t.Fatal("expected a change notification after writing the report")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// A burst of writes within the debounce window.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !waitChanged(t, w, 3*time.Second) {
		t.Fatal("expected one coalesced notification")
	}
	// The burst must not have queued a second one.
	if waitChanged(t, w, 300*time.Millisecond) {
		t.Error("burst produced more than one notification")
	}
}

func TestWatcherPollingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(30*time.Millisecond),
		WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode when forced")
	}

	// Size change guarantees detection even with coarse mtime resolution.
	if err := os.WriteFile(path, []byte(`[{"file":"a.go"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitChanged(t, w, 3*time.Second) {
		t.Fatal("polling watcher missed the change")
	}
}

func TestWatcherStartTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start should return ErrAlreadyStarted, got %v", err)
	}
}

func TestWatcherMissingFileThenCreated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// First scan finishing creates the report.
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitChanged(t, w, 3*time.Second) {
		t.Fatal("file creation should count as a change")
	}
}

func TestWatcherStopDuringWriteBurst(t *testing.T) {
	// Stopping while the report is mid-write must not race the event
	// goroutine's view of the fsnotify channels. Run with -race.
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		w, err := New(path, WithDebounce(5*time.Millisecond))
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Start(); err != nil {
			t.Fatal(err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for j := 0; j < 10; j++ {
				_ = os.WriteFile(path, []byte("[]"), 0o644)
			}
		}()

		w.Stop()
		<-done
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "r.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop() // must not panic
}

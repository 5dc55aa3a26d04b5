package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatch(t *testing.T, f *FS) <-chan string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan string, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := Watch(ctx, f, discardLogger(), func(key string) { keys <- key }); err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Let the watcher register the directory.
	time.Sleep(100 * time.Millisecond)
	return keys
}

func TestWatchReportsExternalWrite(t *testing.T) {
	f := tempFS(t)
	keys := startWatch(t, f)

	if err := os.WriteFile(filepath.Join(f.Root(), "notes.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case key := <-keys:
		if key != "notes" {
			t.Errorf("key = %q, want notes", key)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}

func TestWatchIgnoresOwnWritesAndForeignFiles(t *testing.T) {
	f := tempFS(t)
	keys := startWatch(t, f)

	if err := f.Write("notes", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(f.Root(), "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case key := <-keys:
		t.Errorf("unexpected change for %q", key)
	case <-time.After(3 * watchDebounce):
	}
}

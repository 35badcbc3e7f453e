package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInvokesCallbackOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".stagepack.yml")
	require.NoError(t, os.WriteFile(file, []byte("version: 1\n"), 0o644))

	w, err := New([]string{file})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			cancel()
			return nil
		})
	}()

	// Give the watcher a moment to start reading events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("version: 1\npaths: {}\n"), 0o644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestRelevantIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stagepack.toml")

	w, err := New([]string{file})
	require.NoError(t, err)
	defer w.fw.Close()

	assert.True(t, w.relevant(fsnotify.Event{Name: file, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: file, Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: file, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.yml"), Op: fsnotify.Write}))
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "x.yml")})
	assert.Error(t, err)
}

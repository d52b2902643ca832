package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestReloadKeepsPreviousTreeOnError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "index.md"), "---\ntitle: Home\n---\n")
	lib, err := Open(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 1, lib.Tree().Len())
	require.Equal(t, root, lib.Root())

	write(t, filepath.Join(root, "bad.md"), "---\ntitle: [oops\n---\n")
	require.Error(t, lib.Reload(context.Background()))
	require.Equal(t, 1, lib.Tree().Len())

	require.NoError(t, os.Remove(filepath.Join(root, "bad.md")))
	write(t, filepath.Join(root, "guide.md"), "---\ntitle: Guide\n---\n")
	require.NoError(t, lib.Reload(context.Background()))
	require.Equal(t, 2, lib.Tree().Len())
}

func TestWatchReloadsOnChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "index.md"), "---\ntitle: Home\n---\n")
	lib, err := Open(context.Background(), root)
	require.NoError(t, err)
	lib.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- lib.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)
	write(t, filepath.Join(root, "new.md"), "---\ntitle: New\n---\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	_, ok := lib.Tree().Find("/new")
	require.True(t, ok)

	cancel()
	require.NoError(t, <-done)
}

func TestRelevantEvents(t *testing.T) {
	t.Parallel()

	require.True(t, relevant(fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Write}))
	require.True(t, relevant(fsnotify.Event{Name: "/c/section", Op: fsnotify.Create}))
	require.False(t, relevant(fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Chmod}))
	require.False(t, relevant(fsnotify.Event{Name: "/c/.a.md.swp", Op: fsnotify.Write}))
	require.False(t, relevant(fsnotify.Event{Name: "/c/logo.png", Op: fsnotify.Write}))
}

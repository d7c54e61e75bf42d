package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sift/internal/library"
)

func TestWatcher_SignalsRescan(t *testing.T) {
	dir := t.TempDir()
	w, err := library.NewWatcher(dir, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, dir, w.Dir())

	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { signals <- struct{}{} })
	}()

	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	select {
	case <-signals:
	case <-time.After(5 * time.Second):
		t.Fatal("no rescan signal")
	}

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := library.NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, zerolog.Nop())
	require.Error(t, err)
}

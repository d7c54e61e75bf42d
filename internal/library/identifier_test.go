package library_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sift/internal/files"
	"github.com/rshade/sift/internal/library"
)

func writeSized(t *testing.T, dir, name string, data []byte) files.Entry {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return files.NewEntry(path, false, int64(len(data)), time.Time{}, time.Time{})
}

func TestContentID_SmallFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSized(t, dir, "a", []byte("same content"))
	b := writeSized(t, dir, "b", []byte("same content"))
	c := writeSized(t, dir, "c", []byte("other content"))

	idA, err := library.ContentID(a.Path, a.Size)
	require.NoError(t, err)
	idB, err := library.ContentID(b.Path, b.Size)
	require.NoError(t, err)
	idC, err := library.ContentID(c.Path, c.Size)
	require.NoError(t, err)

	assert.Len(t, idA, 16)
	assert.Equal(t, idA, idB)
	assert.NotEqual(t, idA, idC)
}

func TestContentID_SampledFiles(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 4*library.MinSampledSize)
	for i := range data {
		data[i] = byte(i % 251)
	}
	base := writeSized(t, dir, "base", data)

	// A change outside every sampled block keeps the identifier.
	unsampled := append([]byte(nil), data...)
	unsampled[library.SampleSize+100] ^= 0xff
	same := writeSized(t, dir, "same", unsampled)

	// A change in the last block alters it.
	tail := append([]byte(nil), data...)
	tail[len(tail)-1] ^= 0xff
	changed := writeSized(t, dir, "changed", tail)

	idBase, err := library.ContentID(base.Path, base.Size)
	require.NoError(t, err)
	idSame, err := library.ContentID(same.Path, same.Size)
	require.NoError(t, err)
	idChanged, err := library.ContentID(changed.Path, changed.Size)
	require.NoError(t, err)

	assert.Equal(t, idBase, idSame)
	assert.NotEqual(t, idBase, idChanged)
}

func TestContentID_Missing(t *testing.T) {
	_, err := library.ContentID(filepath.Join(t.TempDir(), "nope"), 10)
	require.Error(t, err)
}

func TestIdentifier_Identify(t *testing.T) {
	dir := t.TempDir()
	a := writeSized(t, dir, "a.txt", []byte("alpha"))
	b := writeSized(t, dir, "b.txt", []byte("beta"))
	known := writeSized(t, dir, "c.txt", []byte("gamma"))
	known.ContentID = "already"
	folder := files.NewEntry(dir, true, 0, time.Time{}, time.Time{})
	gone := files.NewEntry(filepath.Join(dir, "gone.txt"), false, 3, time.Time{}, time.Time{})

	var (
		mu  sync.Mutex
		got = map[string]string{}
	)
	id := library.NewIdentifier(2, zerolog.Nop())
	err := id.Identify(context.Background(), []files.Entry{a, b, known, folder, gone}, func(r library.ContentReady) {
		mu.Lock()
		defer mu.Unlock()
		got[r.Path] = r.ContentID
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	want, err := library.ContentID(a.Path, a.Size)
	require.NoError(t, err)
	assert.Equal(t, want, got[a.Path])
	assert.NotEmpty(t, got[b.Path])
}

func TestIdentifier_Canceled(t *testing.T) {
	dir := t.TempDir()
	a := writeSized(t, dir, "a.txt", []byte("alpha"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := library.NewIdentifier(0, zerolog.Nop()).Identify(ctx, []files.Entry{a}, func(library.ContentReady) {
		called = true
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionFor(t *testing.T) {
	for ct, want := range map[string]string{
		"image/jpeg":                ".jpg",
		"image/jpg":                 ".jpg",
		"image/png":                 ".png",
		"image/gif":                 ".gif",
		"IMAGE/PNG":                 ".png",
		"image/png; charset=binary": ".png",
	} {
		ext, err := ExtensionFor(ct)
		require.NoError(t, err, ct)
		assert.Equal(t, want, ext, ct)
	}

	for _, ct := range []string{"image/webp", "text/html", "application/pdf", ""} {
		_, err := ExtensionFor(ct)
		assert.ErrorIs(t, err, ErrUnsupportedMediaType, ct)
	}
}

func TestFSBlobStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSBlobStore(dir, "http://localhost:12700")
	require.NoError(t, err)

	data := []byte("png bytes")
	url, err := store.Store(context.Background(), data, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:12700/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := strings.TrimPrefix(url, "http://localhost:12700/uploads/")
	onDisk, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	// Same content, same URL. No second file appears.
	url2, err := store.Store(context.Background(), data, "image/png")
	require.NoError(t, err)
	assert.Equal(t, url, url2)

	// Distinct content never lands on the same name.
	url3, err := store.Store(context.Background(), []byte("other bytes"), "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, url, url3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFSBlobStoreRejectsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSBlobStore(dir, "")
	require.NoError(t, err)

	_, err = store.Store(context.Background(), []byte("nope"), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not touch the directory")
}

func TestMemoryBlobStore(t *testing.T) {
	store := NewMemoryBlobStore("mem://blobs")

	url, err := store.Store(context.Background(), []byte("gif"), "image/gif")
	require.NoError(t, err)

	got, ok := store.Get(url)
	require.True(t, ok)
	assert.Equal(t, []byte("gif"), got)
	assert.Equal(t, 1, store.Calls())

	store.Err = ErrStorageUnavailable
	_, err = store.Store(context.Background(), []byte("gif"), "image/gif")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, 2, store.Calls())
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

func TestKeyValueStore_GetMissing(t *testing.T) {
	store := NewKeyValueStore(filepath.Join(t.TempDir(), "prefs.json"), nil)

	_, err := store.Get(context.Background(), "indexing.paths")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeyValueStore_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	store := NewKeyValueStore(path, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte(`[1,2]`)))
	require.NoError(t, store.Set(ctx, "b", []byte{0xff, 0x00}))
	require.NoError(t, store.Set(ctx, "a", []byte(`[3]`)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[3]`), got)

	got, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0x00}, got)

	// A second store over the same file sees the same data
	reopened := NewKeyValueStore(path, nil)
	got, err = reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[3]`), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestKeyValueStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
	store := NewKeyValueStore(path, nil)
	ctx := context.Background()

	_, err := store.Get(ctx, "a")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "a", []byte(`"x"`)))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"x"`), got)

	backup, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err, "the unreadable file is kept for recovery")
	assert.Equal(t, []byte("{oops"), backup)
}

func TestKeyValueStore_UnreadableFileNotOverwritten(t *testing.T) {
	// A directory where the file should be cannot be read as a store
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	store := NewKeyValueStore(path, nil)

	assert.Error(t, store.Set(context.Background(), "a", []byte("1")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(path + CorruptSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestKeyValueStore_CancelledContext(t *testing.T) {
	store := NewKeyValueStore(filepath.Join(t.TempDir(), "prefs.json"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "a", []byte("1")), context.Canceled)
}

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutGet(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "acme", "widgets.json", []byte(`{"a":1}`)))

	content, err := store.Get(ctx, "acme", "widgets.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(content))
}

func TestLocalPutOverwrites(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "acme", "widgets.json", []byte("first")))
	require.NoError(t, store.Put(ctx, "acme", "widgets.json", []byte("second")))

	content, err := store.Get(ctx, "acme", "widgets.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	filenames, err := store.ListEntityTypes(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"widgets.json"}, filenames)
}

func TestLocalPutLeavesNoStagingFiles(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "acme", "widgets.json", []byte("x")))

	entries, err := os.ReadDir(filepath.Join(root, "acme"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "widgets.json", entries[0].Name())
}

func TestLocalGetNotFound(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "acme", "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalListXSystems(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	xSystems, err := store.ListXSystems(ctx)
	require.NoError(t, err)
	assert.Empty(t, xSystems)

	require.NoError(t, store.Put(ctx, "acme", "a.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "globex", "b.json", []byte("{}")))

	xSystems, err = store.ListXSystems(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"acme", "globex"}, xSystems)
}

func TestLocalListEntityTypesUnknownXSystem(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.ListEntityTypes(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStats(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "acme", "a.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "acme", "b.csv", []byte("x,y")))
	require.NoError(t, store.Put(ctx, "globex", "c.json", []byte("{}")))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "acme", stats[0].Name)
	assert.Equal(t, 2, stats[0].FileCount)
	assert.False(t, stats[0].LastModified.IsZero())
	assert.Equal(t, "globex", stats[1].Name)
	assert.Equal(t, 1, stats[1].FileCount)
}

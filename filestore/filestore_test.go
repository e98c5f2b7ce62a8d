package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Get(t *testing.T) {
	t.Run("should report every key as absent before the file exists", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "exclusions.json"))

		value, ok, err := store.Get(context.Background(), "excludedSites")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("should fail on a document that is not a JSON object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exclusions.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		_, _, err := New(path).Get(context.Background(), "excludedSites")
		assert.Error(t, err)
	})

	t.Run("should honour a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := New(filepath.Join(t.TempDir(), "x.json")).Get(ctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_Set(t *testing.T) {
	t.Run("should create the file and read the value back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "exclusions.json")
		store := New(path)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "excludedSites", []byte(`["a.com","b.com"]`)))

		value, ok, err := store.Get(ctx, "excludedSites")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `["a.com","b.com"]`, string(value))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fileMode, info.Mode().Perm())
	})

	t.Run("should keep other keys when writing one", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "exclusions.json"))
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "one", []byte(`["one.com"]`)))
		require.NoError(t, store.Set(ctx, "two", []byte(`["two.com"]`)))

		value, ok, err := store.Get(ctx, "one")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `["one.com"]`, string(value))
	})

	t.Run("should reject values that are not JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exclusions.json")
		store := New(path)

		err := store.Set(context.Background(), "k", []byte("a.com"))
		assert.ErrorIs(t, err, ErrNotJSON)
		assert.NoFileExists(t, path)
	})

	t.Run("should leave no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store := New(filepath.Join(dir, "exclusions.json"))

		require.NoError(t, store.Set(context.Background(), "k", []byte(`[]`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "exclusions.json", entries[0].Name())
	})

	t.Run("should serialize concurrent writers", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "exclusions.json"))
		ctx := context.Background()

		var wg sync.WaitGroup
		keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		for _, key := range keys {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, key, []byte(`["`+key+`.com"]`)))
			}(key)
		}
		wg.Wait()

		for _, key := range keys {
			_, ok, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok, key)
		}
	})
}

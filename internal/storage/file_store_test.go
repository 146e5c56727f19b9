package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-client/internal/config"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		s, err := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
		require.NoError(t, err)

		_, err = s.Get(ctx, "my-app-theme")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Set then get survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "prefs.json")
		s, err := NewFileStore(path)
		require.NoError(t, err)

		require.NoError(t, s.Set(ctx, "my-app-theme", "dark"))
		require.NoError(t, s.Set(ctx, "other", "x"))

		reopened, err := NewFileStore(path)
		require.NoError(t, err)
		v, err := reopened.Get(ctx, "my-app-theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", v)
	})

	t.Run("Delete", func(t *testing.T) {
		s, err := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
		require.NoError(t, err)

		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))
		_, err = s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		s, err := NewFileStore(path)
		require.NoError(t, err)

		_, err = s.Get(ctx, "k")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse preferences")
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		s, err := NewFromConfig(config.PreferencesConfig{Type: "file", Path: filepath.Join(t.TempDir(), "p.json")})
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("Redis", func(t *testing.T) {
		s, err := NewFromConfig(config.PreferencesConfig{Type: "redis", RedisAddr: "localhost:6379"})
		require.NoError(t, err)
		assert.IsType(t, &RedisStore{}, s)
		assert.NoError(t, s.Close())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewFromConfig(config.PreferencesConfig{Type: "s3"})
		assert.Error(t, err)
	})
}

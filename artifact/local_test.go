package artifact_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/distcache/artifact"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	payload := []byte("local matrix bytes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "caches"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "caches", "train.matrix"), payload, 0o644))

	store := artifact.NewLocalStore(root)

	a, err := store.Open(ctx, "caches/train.matrix")
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, int64(len(payload)), a.Size())

	rc, err := a.Reader(ctx)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLocalStoreNotFound(t *testing.T) {
	ctx := context.Background()

	store := artifact.NewLocalStore(t.TempDir())

	_, err := store.Open(ctx, "missing.matrix")
	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

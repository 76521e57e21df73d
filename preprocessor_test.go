package distcache_test

import (
	"path/filepath"
	"testing"

	"github.com/hupe1980/distcache"
	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/knn"
	"github.com/hupe1980/distcache/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKNNFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knn.bin")
	records := []testutil.KNNRecord{
		{ID: 0, Neighbors: knn.NeighborList{{ID: 1, Distance: 1.5}, {ID: 2, Distance: 2.5}}},
		{ID: 1, Neighbors: knn.NeighborList{{ID: 2, Distance: 0.9}, {ID: 0, Distance: 1.5}}},
	}
	require.NoError(t, testutil.WriteKNNCacheFile(path, knn.CacheMagic, records))
	return path
}

func TestNewPreprocessor(t *testing.T) {
	pre, err := distcache.NewPreprocessor(writeKNNFixture(t), []core.ObjectID{0, 1}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, pre.Len())
	assert.Equal(t, 2, pre.K())

	list, ok := pre.KNN(0)
	require.True(t, ok)
	assert.Equal(t, knn.NeighborList{{ID: 1, Distance: 1.5}, {ID: 2, Distance: 2.5}}, list)

	list, ok = pre.KNN(1)
	require.True(t, ok)
	assert.Equal(t, knn.NeighborList{{ID: 2, Distance: 0.9}, {ID: 0, Distance: 1.5}}, list)

	_, ok = pre.KNN(42)
	assert.False(t, ok)
}

func TestNewPreprocessorRequestedKTooLarge(t *testing.T) {
	_, err := distcache.NewPreprocessor(writeKNNFixture(t), []core.ObjectID{0, 1}, 3)
	assert.ErrorIs(t, err, distcache.ErrInsufficientNeighbors)
}

func TestNewPreprocessorInvalidK(t *testing.T) {
	_, err := distcache.NewPreprocessor(writeKNNFixture(t), []core.ObjectID{0, 1}, 0)
	assert.ErrorIs(t, err, distcache.ErrInvalidK)

	_, err = distcache.NewPreprocessor(writeKNNFixture(t), []core.ObjectID{0, 1}, -2)
	assert.ErrorIs(t, err, distcache.ErrInvalidK)
}

func TestNewPreprocessorWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knn.bin")
	records := []testutil.KNNRecord{
		{ID: 0, Neighbors: knn.NeighborList{{ID: 1, Distance: 1.0}}},
	}
	require.NoError(t, testutil.WriteKNNCacheFile(path, 0x11111111, records))

	_, err := distcache.NewPreprocessor(path, []core.ObjectID{0}, 1)
	assert.ErrorIs(t, err, distcache.ErrMagicMismatch)

	pre, err := distcache.NewPreprocessor(path, []core.ObjectID{0}, 1, distcache.WithKNNMagic(0x11111111))
	require.NoError(t, err)
	assert.Equal(t, 1, pre.Len())
}

func TestNewPreprocessorMissingFile(t *testing.T) {
	_, err := distcache.NewPreprocessor(filepath.Join(t.TempDir(), "nope.bin"), []core.ObjectID{0}, 1)
	assert.ErrorIs(t, err, distcache.ErrCacheRead)
}

package distcache_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/hupe1980/distcache"
	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/matrix"
	"github.com/hupe1980/distcache/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeByThree plants the matrix (0,0)=0 (0,1)=1 (0,2)=2 (1,1)=0 (1,2)=3 (2,2)=0.
func threeByThree(i, j int) float64 {
	switch {
	case i == j:
		return 0.0
	case i == 0 && j == 1:
		return 1.0
	case i == 0 && j == 2:
		return 2.0
	default:
		return 3.0
	}
}

func openThreeByThree(t *testing.T, opts ...distcache.Option) *distcache.DistanceFunc {
	t.Helper()
	path := filepath.Join(t.TempDir(), "distances.mat")
	require.NoError(t, testutil.WriteDoubleMatrixFile(path, matrix.DoubleDistanceMagic, 3, threeByThree))

	df, err := distcache.OpenDistanceFunc(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = df.Close() })
	return df
}

func TestDistance(t *testing.T) {
	df := openThreeByThree(t)
	assert.Equal(t, 3, df.Dimension())

	want := map[[2]core.ObjectID]float64{
		{0, 0}: 0.0, {0, 1}: 1.0, {0, 2}: 2.0,
		{1, 1}: 0.0, {1, 2}: 3.0, {2, 2}: 0.0,
	}
	for pair, expected := range want {
		got, err := df.Distance(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, expected, got, "pair %v", pair)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	df := openThreeByThree(t)

	d12, err := df.Distance(1, 2)
	require.NoError(t, err)
	d21, err := df.Distance(2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3.0, d12)
	assert.Equal(t, d12, d21)
}

func TestDistanceUndefinedSentinel(t *testing.T) {
	df := openThreeByThree(t)

	d, err := df.Distance(core.Undefined, 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d))

	d, err = df.Distance(1, core.Undefined)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d))
}

func TestDistanceUndefinedConfigurable(t *testing.T) {
	df := openThreeByThree(t, distcache.WithUndefinedDistance(math.Inf(1)))

	d, err := df.Distance(core.Undefined, core.Undefined)
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))
}

func TestDistanceNegativeID(t *testing.T) {
	df := openThreeByThree(t)

	_, err := df.Distance(-1, 2)
	assert.ErrorIs(t, err, distcache.ErrInvalidID)

	_, err = df.Distance(0, -7)
	assert.ErrorIs(t, err, distcache.ErrInvalidID)
}

func TestOpenDistanceFuncWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.mat")
	require.NoError(t, testutil.WriteDoubleMatrixFile(path, 0xbadc0de, 3, threeByThree))

	_, err := distcache.OpenDistanceFunc(path)
	assert.ErrorIs(t, err, distcache.ErrMagicMismatch)

	// The caller-declared magic makes the same file acceptable.
	df, err := distcache.OpenDistanceFunc(path, distcache.WithMatrixMagic(0xbadc0de))
	require.NoError(t, err)
	defer df.Close()

	d, err := df.Distance(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestOpenDistanceFuncMissingFile(t *testing.T) {
	_, err := distcache.OpenDistanceFunc(filepath.Join(t.TempDir(), "nope.mat"))
	assert.ErrorIs(t, err, distcache.ErrCacheRead)
}

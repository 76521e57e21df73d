package distcache

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/matrix"
)

// doubleSize is the record width of a float64 distance.
const doubleSize = 8

// DistanceFunc serves pairwise distances from a precomputed matrix file.
//
// Distances are symmetric by construction: only pairs (i, j) with i <= j are
// stored, and lookups canonicalize the pair order. The zero value is not
// usable; obtain instances from OpenDistanceFunc.
type DistanceFunc struct {
	store     *matrix.Store
	undefined float64
	logger    *Logger
}

// OpenDistanceFunc opens and validates the distance matrix at path.
// The store stays memory-mapped for the lifetime of the function; callers
// must Close it when done.
func OpenDistanceFunc(path string, opts ...Option) (*DistanceFunc, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store, err := matrix.Open(path, matrix.Config{
		Magic:       o.matrixMagic,
		RecordWidth: doubleSize,
	})
	if err != nil {
		err = translateError(err)
		o.logger.LogMatrixOpen(path, 0, err)
		return nil, err
	}
	o.logger.LogMatrixOpen(path, store.Dimension(), nil)

	return &DistanceFunc{
		store:     store,
		undefined: o.undefinedDistance,
		logger:    o.logger,
	}, nil
}

// Distance returns the cached distance between two objects.
//
// If either id is the Undefined sentinel, the configured undefined distance
// is returned without error. Negative ids are not representable on disk and
// fail with ErrInvalidID. Distance(a, b) == Distance(b, a) for all valid
// pairs.
func (d *DistanceFunc) Distance(id1, id2 core.ObjectID) (float64, error) {
	if id1 == core.Undefined || id2 == core.Undefined {
		return d.undefined, nil
	}
	if !id1.Valid() || !id2.Valid() {
		return 0, fmt.Errorf("%w: negative ids (%d,%d) not supported by the on-disk cache", ErrInvalidID, id1, id2)
	}
	// The smaller id is the first key.
	if id1 > id2 {
		id1, id2 = id2, id1
	}

	rec, err := d.store.ReadRecord(id1, id2)
	if err != nil {
		return 0, fmt.Errorf("loading distance (%d,%d) from %s: %w", id1, id2, d.store.Path(), translateError(err))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(rec)), nil
}

// Dimension returns the number of distinct ids covered by the matrix.
func (d *DistanceFunc) Dimension() int {
	return d.store.Dimension()
}

// Close releases the underlying mapping. Idempotent.
func (d *DistanceFunc) Close() error {
	return d.store.Close()
}

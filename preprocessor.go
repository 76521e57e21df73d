package distcache

import (
	"fmt"

	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/knn"
)

// Preprocessor serves k-nearest-neighbor lists from a precomputed cache
// file.
//
// The whole file is read in one sequential pass at construction time; this
// is a blocking initialization barrier, not a background task. The
// materialized index is owned exclusively by the Preprocessor, never aliases
// file-backed storage, and is immutable afterwards.
type Preprocessor struct {
	k     int
	path  string
	lists map[core.ObjectID]knn.NeighborList
}

// NewPreprocessor loads the kNN cache at path for the given relation.
//
// The relation must iterate object ids in the exact order the builder used
// when writing the file; the format carries no index to detect a mismatch.
// The cache must have been built for at least k neighbors per object, or
// loading fails with ErrInsufficientNeighbors.
func NewPreprocessor(path string, relation []core.ObjectID, k int, opts ...Option) (*Preprocessor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	lists, err := knn.Load(path, relation, knn.Config{
		K:      k,
		Magic:  o.knnMagic,
		Logger: o.logger.WithK(k).Logger,
	})
	if err != nil {
		err = translateError(err)
		o.logger.LogCacheLoad(path, 0, err)
		return nil, err
	}
	o.logger.LogCacheLoad(path, len(lists), nil)

	return &Preprocessor{
		k:     k,
		path:  path,
		lists: lists,
	}, nil
}

// KNN returns the cached neighbor list for id, in stored order (ascending
// by distance, as written by the builder).
func (p *Preprocessor) KNN(id core.ObjectID) (knn.NeighborList, bool) {
	list, ok := p.lists[id]
	return list, ok
}

// K returns the neighbor count the preprocessor was loaded for.
func (p *Preprocessor) K() int {
	return p.k
}

// Len returns the number of materialized neighbor lists.
func (p *Preprocessor) Len() int {
	return len(p.lists)
}

// Path returns the cache file the preprocessor was loaded from.
func (p *Preprocessor) Path() string {
	return p.path
}

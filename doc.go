// Package distcache serves precomputed distance and k-nearest-neighbor
// results from disk-backed cache files.
//
// Large, static datasets make recomputing pairwise distances wasteful. An
// offline builder writes results once, either as an upper-triangle distance
// matrix or as a kNN-list cache, and this package memory-maps or streams them
// back at query time:
//
//   - DistanceFunc answers Distance(a, b) point lookups against a
//     memory-mapped symmetric matrix file.
//   - Preprocessor loads a kNN cache file in one sequential pass and serves
//     KNN(id) lookups from the materialized in-memory index.
//
// Both paths validate the file before trusting it (magic number, header
// geometry, per-object neighbor counts) and fail hard on any structural
// problem: a cache is either fully trustworthy or unusable, because a wrong
// or short answer would silently corrupt downstream algorithm results. The
// single tolerated anomaly is trailing bytes after a complete kNN load,
// which is logged and ignored.
//
// # Quick Start
//
//	df, err := distcache.OpenDistanceFunc("distances.mat")
//	if err != nil { ... }
//	defer df.Close()
//	d, err := df.Distance(12, 34)
//
//	pre, err := distcache.NewPreprocessor("knn.bin", relation, 10)
//	if err != nil { ... }
//	neighbors, ok := pre.KNN(12)
//
// Cache files shipped through object storage can be materialized locally
// first with the artifact package (S3, MinIO, local directories, with
// transparent zstd/lz4 artifact decompression).
//
// # Concurrency
//
// Opening and loading are blocking, single-threaded operations. Afterwards
// both DistanceFunc and Preprocessor are immutable and safe for arbitrary
// concurrent readers without locking. Files are write-once/read-many; no
// writer ever coexists with readers.
package distcache

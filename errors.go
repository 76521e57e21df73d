package distcache

import (
	"errors"
	"fmt"

	"github.com/hupe1980/distcache/knn"
	"github.com/hupe1980/distcache/matrix"
	"github.com/hupe1980/distcache/varint"
)

var (
	// ErrMagicMismatch indicates a cache file of the wrong or corrupt type.
	ErrMagicMismatch = errors.New("cache magic number mismatch")

	// ErrTruncatedHeader indicates a file shorter than its declared header.
	ErrTruncatedHeader = errors.New("cache header truncated")

	// ErrTruncatedInput indicates a file that ends inside a record,
	// including mid-varint EOF.
	ErrTruncatedInput = errors.New("cache input truncated")

	// ErrInvalidID indicates a negative or otherwise unaddressable id.
	ErrInvalidID = errors.New("invalid object id")

	// ErrInsufficientNeighbors indicates a cache built for a smaller k than
	// requested.
	ErrInsufficientNeighbors = errors.New("cache contains fewer than k neighbors")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrCacheRead wraps I/O failures from the underlying storage medium.
	// It is non-recoverable: there is no retry and no fallback to on-the-fly
	// computation.
	ErrCacheRead = errors.New("cache read failure")
)

// translateError unifies subpackage errors into the public taxonomy.
// The original error stays reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, matrix.ErrMagicMismatch), errors.Is(err, knn.ErrMagicMismatch):
		return fmt.Errorf("%w: %w", ErrMagicMismatch, err)
	case errors.Is(err, matrix.ErrTruncatedHeader):
		return fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	case errors.Is(err, knn.ErrTruncatedInput), errors.Is(err, varint.ErrTruncated):
		return fmt.Errorf("%w: %w", ErrTruncatedInput, err)
	case errors.Is(err, matrix.ErrInvalidID), errors.Is(err, knn.ErrInvalidID):
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	case errors.Is(err, knn.ErrInsufficientNeighbors):
		return fmt.Errorf("%w: %w", ErrInsufficientNeighbors, err)
	case errors.Is(err, matrix.ErrHeaderMismatch), errors.Is(err, knn.ErrDuplicateObject):
		return err
	}

	// Anything else on the read path is a storage failure.
	return fmt.Errorf("%w: %w", ErrCacheRead, err)
}

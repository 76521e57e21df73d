// Package knn reads precomputed k-nearest-neighbor cache files.
//
// A cache file starts with a 4-byte magic number, followed by one record per
// relation object in builder iteration order: a varint object id, a varint
// neighbor count, then count pairs of (varint neighbor id, 8-byte float64
// distance). The format carries no id-to-position index, so the caller's
// relation order is a hard contract with the builder that wrote the file.
//
// Loading is a single sequential pass that materializes the whole file into
// an in-memory map. The map is immutable afterwards and safe to share across
// concurrent readers.
package knn

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/internal/mmap"
	"github.com/hupe1980/distcache/varint"
)

// CacheMagic identifies kNN-list cache files ("KNNC" on disk).
const CacheMagic uint32 = 0x434e4e4b

const distanceSize = 8

var (
	// ErrMagicMismatch is returned when the file does not start with the
	// expected magic number.
	ErrMagicMismatch = errors.New("knn: magic number mismatch")

	// ErrTruncatedInput is returned when the file ends inside a record,
	// including mid-varint EOF.
	ErrTruncatedInput = errors.New("knn: truncated input")

	// ErrInsufficientNeighbors is returned when an object's stored neighbor
	// count is below the requested k. A cache built for a smaller k cannot
	// serve a larger k request.
	ErrInsufficientNeighbors = errors.New("knn: cache contains fewer than k neighbors")

	// ErrInvalidID is returned when a stored id does not fit an ObjectID.
	ErrInvalidID = errors.New("knn: invalid object id")

	// ErrDuplicateObject is returned when the same object id occurs twice,
	// which indicates a builder/reader iteration-order mismatch.
	ErrDuplicateObject = errors.New("knn: duplicate object id")
)

// NeighborEntry is one (neighbor, distance) pair of a kNN list.
type NeighborEntry struct {
	ID       core.ObjectID
	Distance float64
}

// NeighborList is the ordered kNN list of one query object.
// The builder stores entries ascending by distance; the reader preserves
// file order and never re-sorts.
type NeighborList []NeighborEntry

// Config controls a cache load.
type Config struct {
	// K is the requested neighbor count. Every object in the file must
	// carry at least K neighbors.
	K int

	// Magic overrides the expected magic number. Zero means CacheMagic.
	Magic uint32

	// Logger receives non-fatal diagnostics (trailing bytes after a
	// complete load). Nil discards them.
	Logger *slog.Logger
}

// Load reads the cache file at path and materializes one neighbor list per
// relation object. The relation supplies the iteration count and order used
// by the builder; the ids stored in the file are authoritative map keys.
//
// Any structural failure is fatal and returns a nil map; there is no partial
// or degraded result.
func Load(path string, relation []core.ObjectID, cfg Config) (map[core.ObjectID]NeighborList, error) {
	magic := cfg.Magic
	if magic == 0 {
		magic = CacheMagic
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("knn: open %s: %w", path, err)
	}
	defer m.Close()

	_ = m.Advise(mmap.AccessSequential)

	data := m.Bytes()
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %s holds %d bytes, want 4-byte magic", ErrTruncatedInput, path, len(data))
	}
	if got := binary.LittleEndian.Uint32(data[0:4]); got != magic {
		return nil, fmt.Errorf("%w: %s has 0x%08x, want 0x%08x", ErrMagicMismatch, path, got, magic)
	}

	cur := cursor{buf: data, pos: 4}
	seen := roaring.New()
	lists := make(map[core.ObjectID]NeighborList, len(relation))

	for range relation {
		id, err := cur.readID()
		if err != nil {
			return nil, err
		}
		if !seen.CheckedAdd(uint32(id)) {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateObject, id)
		}

		count, err := cur.readCount()
		if err != nil {
			return nil, err
		}
		if count < cfg.K {
			return nil, fmt.Errorf("%w: object %d has %d, requested %d", ErrInsufficientNeighbors, id, count, cfg.K)
		}

		list := make(NeighborList, count)
		for i := range list {
			nid, err := cur.readID()
			if err != nil {
				return nil, err
			}
			dist, err := cur.readDistance()
			if err != nil {
				return nil, err
			}
			list[i] = NeighborEntry{ID: nid, Distance: dist}
		}
		lists[id] = list
	}

	if remaining := len(data) - cur.pos; remaining > 0 {
		logger.Warn("knn cache has trailing bytes",
			"path", path,
			"remaining", remaining,
		)
	}

	return lists, nil
}

// cursor walks the mapped file sequentially.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) readUvarint() (uint64, error) {
	v, n, err := varint.Decode(c.buf[c.pos:])
	if err != nil {
		if errors.Is(err, varint.ErrTruncated) {
			return 0, fmt.Errorf("%w: %v at offset %d", ErrTruncatedInput, err, c.pos)
		}
		return 0, fmt.Errorf("knn: offset %d: %w", c.pos, err)
	}
	c.pos += n
	return v, nil
}

func (c *cursor) readID() (core.ObjectID, error) {
	v, err := c.readUvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d overflows 32 bits", ErrInvalidID, v)
	}
	return core.ObjectID(v), nil
}

func (c *cursor) readCount() (int, error) {
	v, err := c.readUvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: neighbor count %d overflows 32 bits", ErrInvalidID, v)
	}
	return int(v), nil
}

func (c *cursor) readDistance() (float64, error) {
	if len(c.buf)-c.pos < distanceSize {
		return 0, fmt.Errorf("%w: %d bytes left for an 8-byte distance at offset %d", ErrTruncatedInput, len(c.buf)-c.pos, c.pos)
	}
	bits := binary.LittleEndian.Uint64(c.buf[c.pos : c.pos+distanceSize])
	c.pos += distanceSize
	return math.Float64frombits(bits), nil
}

// Package matrix implements the read-only, on-disk upper-triangle matrix
// used to cache precomputed pairwise distances.
//
// Only pairs (i, j) with i <= j are physically stored; callers exploit
// distance symmetry by canonicalizing the pair order. The file is written
// once by an offline builder and memory-mapped here for random access.
package matrix

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/internal/mmap"
)

// DoubleDistanceMagic tags matrix files holding 8-byte float64 distance
// records. Inherited from the original cache builder format.
const DoubleDistanceMagic uint32 = 50902811

const (
	// fixedHeaderSize covers magic, header size, record width and record
	// count, one uint32 each.
	fixedHeaderSize = 16

	// triangleExtraSize is the leading portion of the extra header holding
	// the matrix dimension.
	triangleExtraSize = 4
)

var (
	// ErrMagicMismatch is returned when the stored magic number differs
	// from the caller's expected constant.
	ErrMagicMismatch = errors.New("matrix: magic number mismatch")

	// ErrTruncatedHeader is returned when the file is shorter than the
	// structure its header promises.
	ErrTruncatedHeader = errors.New("matrix: truncated header")

	// ErrHeaderMismatch is returned when a stored header field contradicts
	// the caller's declared configuration.
	ErrHeaderMismatch = errors.New("matrix: header mismatch")

	// ErrInvalidID is returned for ids the triangle layout cannot address:
	// negative ids or ids at or beyond the matrix dimension.
	ErrInvalidID = errors.New("matrix: invalid object id")
)

// Config declares what the caller expects of a matrix file.
type Config struct {
	// Magic is the purpose-specific format tag, e.g. DoubleDistanceMagic.
	Magic uint32

	// RecordWidth is the fixed record size in bytes (8 for a float64).
	RecordWidth int

	// ExtraHeaderSize is the number of caller-declared extra header bytes
	// beyond the matrix dimension. Usually zero.
	ExtraHeaderSize int
}

// Store is a read-only view over one matrix file.
// It is safe for concurrent use; lookups recompute the offset and read
// straight from the shared mapping without mutating any state.
type Store struct {
	m           *mmap.Mapping
	path        string
	headerSize  int
	recordWidth int
	numRecords  int
	dim         int
}

// Open maps the file at path and validates its header against cfg.
func Open(path string, cfg Config) (*Store, error) {
	if cfg.RecordWidth <= 0 {
		return nil, fmt.Errorf("%w: record width %d", ErrHeaderMismatch, cfg.RecordWidth)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matrix: open %s: %w", path, err)
	}

	s, err := validate(m, path, cfg)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	_ = m.Advise(mmap.AccessRandom)
	return s, nil
}

func validate(m *mmap.Mapping, path string, cfg Config) (*Store, error) {
	data := m.Bytes()
	if len(data) < fixedHeaderSize {
		return nil, fmt.Errorf("%w: %s holds %d bytes", ErrTruncatedHeader, path, len(data))
	}

	// Magic is checked first; nothing else in the file is trusted before it.
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != cfg.Magic {
		return nil, fmt.Errorf("%w: %s has 0x%08x, want 0x%08x", ErrMagicMismatch, path, magic, cfg.Magic)
	}

	headerSize := int(binary.LittleEndian.Uint32(data[4:8]))
	recordWidth := int(binary.LittleEndian.Uint32(data[8:12]))
	numRecords := int(binary.LittleEndian.Uint32(data[12:16]))

	wantHeader := fixedHeaderSize + triangleExtraSize + cfg.ExtraHeaderSize
	if headerSize != wantHeader {
		return nil, fmt.Errorf("%w: header size %d, want %d", ErrHeaderMismatch, headerSize, wantHeader)
	}
	if recordWidth != cfg.RecordWidth {
		return nil, fmt.Errorf("%w: record width %d, want %d", ErrHeaderMismatch, recordWidth, cfg.RecordWidth)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %s holds %d bytes, header promises %d", ErrTruncatedHeader, path, len(data), headerSize)
	}

	dim := int(binary.LittleEndian.Uint32(data[fixedHeaderSize : fixedHeaderSize+triangleExtraSize]))
	if want := dim * (dim + 1) / 2; numRecords != want {
		return nil, fmt.Errorf("%w: %d records for dimension %d, want %d", ErrHeaderMismatch, numRecords, dim, want)
	}

	promised := int64(headerSize) + int64(numRecords)*int64(recordWidth)
	if int64(len(data)) < promised {
		return nil, fmt.Errorf("%w: %s holds %d bytes, header promises %d", ErrTruncatedHeader, path, len(data), promised)
	}

	return &Store{
		m:           m,
		path:        path,
		headerSize:  headerSize,
		recordWidth: recordWidth,
		numRecords:  numRecords,
		dim:         dim,
	}, nil
}

// Dimension returns the number of distinct ids the matrix covers.
func (s *Store) Dimension() int {
	return s.dim
}

// RecordWidth returns the fixed record size in bytes.
func (s *Store) RecordWidth() int {
	return s.recordWidth
}

// Path returns the file the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// ExtraHeader returns the caller-declared extra header bytes.
// The slice aliases the mapping and is valid until Close.
func (s *Store) ExtraHeader() []byte {
	start := fixedHeaderSize + triangleExtraSize
	return s.m.Bytes()[start:s.headerSize]
}

// ReadRecord returns the record for the pair (i, j).
// The pair is canonicalized so the smaller id leads; the returned slice
// aliases the mapping and is valid until Close.
func (s *Store) ReadRecord(i, j core.ObjectID) ([]byte, error) {
	if i > j {
		i, j = j, i
	}
	if i < 0 {
		return nil, fmt.Errorf("%w: negative id %d", ErrInvalidID, i)
	}
	if int(j) >= s.dim {
		return nil, fmt.Errorf("%w: id %d beyond matrix dimension %d", ErrInvalidID, j, s.dim)
	}

	off := int64(s.headerSize) + int64(s.recordWidth)*s.triangleIndex(int64(i), int64(j))
	data := s.m.Bytes()
	if data == nil {
		return nil, mmap.ErrClosed
	}
	return data[off : off+int64(s.recordWidth)], nil
}

// triangleIndex enumerates the upper triangle including the diagonal in
// row-major order, skipping the strictly-lower triangle. Requires i <= j.
func (s *Store) triangleIndex(i, j int64) int64 {
	n := int64(s.dim)
	return i*n - i*(i-1)/2 + (j - i)
}

// Close releases the mapping. Records obtained from ReadRecord become
// invalid afterwards.
func (s *Store) Close() error {
	return s.m.Close()
}

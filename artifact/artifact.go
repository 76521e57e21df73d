package artifact

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when an artifact does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing immutable cache artifacts.
type Store interface {
	// Open opens an artifact for reading.
	Open(ctx context.Context, name string) (Artifact, error)
}

// Artifact is a read-only handle to one stored cache file.
type Artifact interface {
	io.Closer
	// Size returns the stored size in bytes (compressed, if applicable).
	Size() int64
	// Reader returns a sequential stream over the stored bytes.
	Reader(ctx context.Context) (io.ReadCloser, error)
}

// FileDownloader is an optional interface for artifacts that can download
// themselves into a file, typically with parallel ranged reads.
// The repository uses it for uncompressed artifacts where no streaming
// transform is needed.
type FileDownloader interface {
	DownloadTo(ctx context.Context, w io.WriterAt) (int64, error)
}

package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements Store over a local directory, e.g. a network mount
// the offline builder writes to.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens an artifact for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Artifact, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &localArtifact{path: path, size: fi.Size()}, nil
}

type localArtifact struct {
	path string
	size int64
}

func (a *localArtifact) Size() int64 {
	return a.size
}

func (a *localArtifact) Reader(_ context.Context) (io.ReadCloser, error) {
	return os.Open(a.path)
}

func (a *localArtifact) Close() error {
	return nil
}

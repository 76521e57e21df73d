package artifact

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Put stores an artifact.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[name] = copied
}

// Open opens an artifact for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy to prevent mutation while a reader is outstanding.
	copied := make([]byte, len(data))
	copy(copied, data)

	return &memoryArtifact{data: copied}, nil
}

type memoryArtifact struct {
	data []byte
}

func (a *memoryArtifact) Size() int64 {
	return int64(len(a.data))
}

func (a *memoryArtifact) Reader(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(a.data)), nil
}

func (a *memoryArtifact) Close() error {
	return nil
}

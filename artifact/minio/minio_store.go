package minio

import (
	"context"
	"io"
	"path"

	"github.com/hupe1980/distcache/artifact"
	"github.com/minio/minio-go/v7"
)

// Store implements artifact.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO artifact store.
// rootPrefix is prepended to all keys (e.g. "caches/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an artifact for reading.
func (s *Store) Open(ctx context.Context, name string) (artifact.Artifact, error) {
	key := s.key(name)

	// Get object info to verify existence and get size
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, artifact.ErrNotFound
		}
		return nil, err
	}

	return &minioArtifact{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// minioArtifact implements artifact.Artifact for MinIO.
type minioArtifact struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (a *minioArtifact) Size() int64 {
	return a.size
}

func (a *minioArtifact) Reader(ctx context.Context) (io.ReadCloser, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (a *minioArtifact) Close() error {
	return nil
}

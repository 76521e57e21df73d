// Package artifact materializes immutable cache files from a blob backend
// onto the local disk.
//
// Distance matrices and kNN caches are produced by an offline builder and
// commonly shipped through object storage. The read path wants a local file
// it can memory-map, so a Repository fetches each artifact once into a local
// directory (atomically, via a temp file and rename) and returns the local
// path for the core to open.
//
// Artifacts whose names end in ".zst" or ".lz4" are decompressed in flight;
// the materialized file always holds the raw cache bytes. Because artifacts
// are immutable, an already materialized file is reused without contacting
// the backend.
//
// Backends: a local directory (this package), S3 (artifact/s3) and MinIO
// (artifact/minio). MemoryStore exists for tests.
package artifact

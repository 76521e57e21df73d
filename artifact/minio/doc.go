// Package minio provides an artifact.Store backed by MinIO or any
// S3-compatible object storage.
package minio

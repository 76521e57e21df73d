// Package s3 provides an artifact.Store backed by Amazon S3.
//
// Cache artifacts are read-only on the query path, so the store only
// implements Open. Raw (uncompressed) artifacts are downloaded with the
// parallel ranged downloader from the AWS SDK.
package s3

// Package mmap provides read-only memory-mapped file access.
//
// Cache files are written once offline and never mutated afterwards, so every
// mapping is created read-only and may be shared across concurrent readers
// without locking. A Mapping is a scoped resource: it is acquired by Open and
// must be released with Close, which is safe to call on every exit path.
//
// On Unix platforms Advise forwards access-pattern hints to madvise(2); on
// Windows it is a no-op.
package mmap

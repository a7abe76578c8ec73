package fcache

import "errors"

var (
	// ErrNotFound is returned when a key is not present in the cache.
	ErrNotFound = errors.New("fcache: key not found")

	// ErrCacheDirInUse is returned when another live cache in this
	// process already owns the requested directory.
	ErrCacheDirInUse = errors.New("fcache: cache directory already in use")

	// ErrClosed is returned when an operation is invoked after Destroy.
	ErrClosed = errors.New("fcache: cache destroyed")
)

package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	// ErrNotFound marks an absent (namespace, key) pair. Callers treat
	// it as a cache miss, never as a failure.
	ErrNotFound = errors.New("cache entry not found")

	// ErrCacheIO marks storage read/write failures. Read failures
	// degrade to a miss upstream; write failures are logged as
	// warnings without failing the request that produced the value.
	ErrCacheIO = errors.New("cache storage failure")
)

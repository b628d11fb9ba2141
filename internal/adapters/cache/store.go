// Package cache defines the persistent key/value store interface and
// its SQLite-backed implementation.
//
// The store has no expiry logic; staleness is resolved only by an
// explicit refresh overwriting entries. It is passed explicitly to
// every component needing it, never held as ambient global state.
package cache

import "context"

// Namespace identifiers. The transformed character list and the
// resolved-name mappings never share a key space.
const (
	NamespaceCharacters = "characters"
	NamespacePlanets    = "planet"
	NamespaceFilms      = "film"
	NamespaceSpecies    = "species"
	NamespaceStarships  = "starship"
)

// CharactersKey is the single key the whole transformed list lives
// under, so a refresh replaces it atomically.
const CharactersKey = "all"

// Entry is one namespaced value for batch writes.
type Entry struct {
	Namespace string
	Key       string
	Value     []byte
}

// Store provides namespaced read/write access to cached state.
type Store interface {
	// Get returns the value for (namespace, key).
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, namespace, key string) ([]byte, error)

	// Put replaces the prior value for (namespace, key) atomically.
	// Concurrent readers see either the old or the new value, never a mix.
	Put(ctx context.Context, namespace, key string, value []byte) error

	// PutMany writes a batch of entries in one transaction.
	PutMany(ctx context.Context, entries []Entry) error

	// Close releases the underlying storage.
	Close() error
}

package domain

import "context"

// KeyValueStore is the persistence port behind the exclusion registry.
// It is a schema-less key-value blob store, possibly synchronized across devices, so callers
// must validate whatever they read back.
type KeyValueStore interface {
	// Get returns the raw value stored under key.
	// The boolean is false when nothing is stored under key; that is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	// Implementations write the value as a whole; there is no partial update.
	Set(ctx context.Context, key string, value []byte) error
}

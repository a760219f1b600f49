// Package cache stores rendered artifacts under content-derived keys.
//
// Keys are built from the input that produced an artifact, so an entry never
// goes stale: a changed tree hashes to a new key. Caches therefore have no
// expiry, only eviction.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous entry.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Key builds a cache key "prefix:sha256(parts)".
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Package cache stores rendered artifacts keyed by the hash of the
// graph they were rendered from. Rendering a document is deterministic,
// so a (graph hash, root, format) triple fully identifies an artifact
// and entries never need invalidation beyond TTL expiry.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache]
// for the preview server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// TTLRender is the default lifetime for cached render artifacts.
// Artifacts are content-addressed, so the TTL only bounds disk growth.
const TTLRender = 7 * 24 * time.Hour

// Cache is the storage interface shared by all backends.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey builds the cache key for a rendered artifact.
// graphHash should be Hash of the marshaled graph.
func RenderKey(graphHash, rootID, format string) string {
	return fmt.Sprintf("render:%s:%s:%s", graphHash, rootID, format)
}

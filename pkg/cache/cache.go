// Package cache stores rendered artifacts and parsed sequence files between
// CLI runs.
//
// A [Cache] is a byte-oriented key/value store with per-entry expiry.
// [FileCache] keeps entries under a directory (normally
// $XDG_CACHE_HOME/levelgraph) and [NullCache] disables caching. Keys are
// built by a [Keyer] from content hashes, so an edited input file or a
// changed rendering option never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// SequencesTTL bounds how long parsed sequence files are reused.
	SequencesTTL = 24 * time.Hour

	// ArtifactTTL bounds how long rendered SVG/PDF/PNG output is reused.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a key/value store for opaque byte payloads.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired or unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SequencesKey keys the parsed form of a sequence file by its content hash.
	SequencesKey(sourceHash string) string

	// ArtifactKey keys a rendered artifact by the hash of its DOT source.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the rendering options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer builds keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SequencesKey implements Keyer.
func (DefaultKeyer) SequencesKey(sourceHash string) string {
	return hashKey("sequences", sourceHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

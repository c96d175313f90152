// Package cache provides artifact caching for rendered composites.
//
// Rendering a composite is the expensive step of the pipeline (decode,
// crop, resample, encode), and its output is fully determined by the
// batch's photo bytes plus the render options. Keys are therefore
// content hashes: re-running over an unchanged input directory hits the
// cache, while any edited photo or changed option misses cleanly.
//
// Backends:
//   - FileCache: XDG cache directory, used by the CLI
//   - RedisCache: shared cache for API deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Composite keys are content-addressed so entries
// never go stale; the TTL only bounds disk growth.
const (
	// TTLComposite is the lifetime of rendered composite PNGs.
	TTLComposite = 7 * 24 * time.Hour

	// TTLJob is the lifetime of API job artifacts.
	TTLJob = time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CompositeKeyOpts are the render options that affect composite bytes.
// Any field change must produce a different cache key.
type CompositeKeyOpts struct {
	Layout    string `json:"layout"`
	Enhance   bool   `json:"enhance"`
	FillEmpty bool   `json:"fill_empty"`
	DPI       int    `json:"dpi"`
}

// Keyer generates cache keys.
type Keyer interface {
	// CompositeKey generates a key for one rendered composite from the
	// batch's content hash and the render options.
	CompositeKey(batchHash string, opts CompositeKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CompositeKey generates a key for a rendered composite.
func (k *DefaultKeyer) CompositeKey(batchHash string, opts CompositeKeyOpts) string {
	return hashKey("composite", batchHash, opts)
}

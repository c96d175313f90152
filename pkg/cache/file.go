package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based cache for CLI usage. Composite PNGs
// run to several megabytes, so the payload is stored raw under its key
// hash with a small JSON sidecar carrying the expiration. A missing or
// unreadable sidecar invalidates the entry.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryMeta is the sidecar metadata for one cached payload.
type entryMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	dataPath, metaPath := c.paths(key)

	metaData, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meta entryMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		// Invalid sidecar - treat as miss
		c.remove(key)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		c.remove(key)
		return nil, false, nil
	}

	data, err := os.ReadFile(dataPath)
	if os.IsNotExist(err) {
		c.remove(key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. The payload lands before the sidecar
// so a crash between the two writes leaves a miss, never a live entry
// with missing bytes.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var meta entryMeta
	if ttl > 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	dataPath, metaPath := c.paths(key)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(dataPath, data, 0644); err != nil {
		return err
	}
	return os.WriteFile(metaPath, metaData, 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.remove(key)
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// remove drops both files of an entry, ignoring missing ones.
func (c *FileCache) remove(key string) {
	dataPath, metaPath := c.paths(key)
	_ = os.Remove(dataPath)
	_ = os.Remove(metaPath)
}

// paths converts a cache key to its payload and sidecar file paths.
// The first 2 hash chars form a subdirectory so one directory never
// accumulates every entry.
func (c *FileCache) paths(key string) (string, string) {
	hash := Hash([]byte(key))
	base := filepath.Join(c.dir, hash[:2], hash[2:])
	return base + ".bin", base + ".json"
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)

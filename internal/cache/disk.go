package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// diskSchema versions the on-disk entry layout. Bump it when the
// serialized annotation format changes so stale entries from an older
// build are discarded instead of deserialized into the wrong shape.
const diskSchema = 1

// diskSuffix marks files owned by the cache, so a sweep never touches
// anything else a user may have placed in the directory.
const diskSuffix = ".ann.json"

// DiskCache persists annotations across runs, which keeps repeated
// generation over the same requirement list from re-hitting a remote
// annotation service
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache opens a disk cache rooted at dir and sweeps out entries
// that have expired or carry an unknown schema
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	c := &DiskCache{
		dir: dir,
		ttl: ttl,
	}
	c.sweep()
	return c
}

type diskEntry struct {
	Schema     int       `json:"schema"`
	Annotation []byte    `json:"annotation"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Get retrieves an annotation from the disk cache. Expired and
// unreadable entries are removed on the way out.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Schema != diskSchema {
		_ = os.Remove(path)
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Annotation, true
}

// Set stores an annotation in the disk cache. A zero ttl falls back to
// the cache default.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Schema:     diskSchema,
		Annotation: value,
		ExpiresAt:  time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes an annotation from the disk cache
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes the cache directory and everything in it
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// sweep drops expired or malformed entries so the directory does not
// accumulate dead files across runs. Best effort: a sweep failure only
// means the lazy removal in Get picks the entry up later.
func (c *DiskCache) sweep() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	now := time.Now()
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), diskSuffix) {
			continue
		}
		path := filepath.Join(c.dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry diskEntry
		if json.Unmarshal(data, &entry) != nil || entry.Schema != diskSchema || now.After(entry.ExpiresAt) {
			_ = os.Remove(path)
		}
	}
}

// path maps a cache key to its file on disk
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+diskSuffix)
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is a cached HTTP response with revalidation metadata.
type Entry struct {
	Body       []byte    `json:"body"`
	ETag       string    `json:"etag,omitempty"`
	LastMod    string    `json:"last_modified,omitempty"`
	StatusCode int       `json:"status_code"`
	CachedAt   time.Time `json:"cached_at"`
}

// Expired reports whether the entry is older than ttl.
func (e *Entry) Expired(ttl time.Duration) bool {
	return time.Since(e.CachedAt) > ttl
}

// FileCache stores HTTP responses on disk with a TTL. Keys are hashed to
// file names under a single directory.
type FileCache struct {
	dir string
	ttl time.Duration
}

// New creates the cache directory and returns a FileCache.
func New(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

// Get returns the entry for key and whether it is still fresh. An
// expired entry is returned with fresh=false so callers can revalidate
// with ETag / If-Modified-Since.
func (c *FileCache) Get(key string) (*Entry, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		os.Remove(c.path(key))
		return nil, false
	}

	return &entry, !entry.Expired(c.ttl)
}

// Set stores an entry under key, stamping it with the current time.
func (c *FileCache) Set(key string, entry *Entry) error {
	entry.CachedAt = time.Now()
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

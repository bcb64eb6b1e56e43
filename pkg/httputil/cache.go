package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live (TTL). The stale body is still returned so
// callers can fall back to it when a refresh fails.
var ErrExpired = errors.New("cache entry expired")

// Cache stores fetched artifact bodies on disk.
//
// Each entry is a file named by the SHA-256 hash of its key, so arbitrary
// URLs are safe as keys. Entries expire based on file modification time;
// a TTL of 0 means entries never expire.
//
// Cache operations are not goroutine-safe. Multiple processes can share the
// same directory.
type Cache struct {
	dir string
	ttl time.Duration
}

// DefaultCacheDir returns $XDG_CACHE_HOME/composecheck, falling back to
// ~/.cache/composecheck.
func DefaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "composecheck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "composecheck"), nil
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
// If dir is empty, [DefaultCacheDir] is used. The directory is created if
// it doesn't exist.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the body stored under key. ok is false when nothing is cached.
// An expired entry returns its body together with [ErrExpired].
func (c *Cache) Get(key string) (data []byte, ok bool, err error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return data, false, ErrExpired
	}
	return data, true, nil
}

// Set stores data under key, replacing any previous entry.
func (c *Cache) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.keyPath(key))
}

// Clear removes every cached entry and returns how many were deleted.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".cache")
}

package filecache

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
)

// Cache serves static files through an in-memory TTL layer, so a hot file
// is read from disk at most once per TTL window.
type Cache struct {
	root    string
	bypass  bool
	entries *cache.Cache
}

// New builds a cache rooted at root. With bypass every lookup goes straight
// to disk, which is what you want while editing static files.
func New(root string, ttl time.Duration, bypass bool) *Cache {
	// Cleanup interval 0: expired entries are evicted by Sweep on the
	// scheduler's cadence instead of a second janitor goroutine.
	return &Cache{
		root:    root,
		bypass:  bypass,
		entries: cache.New(ttl, 0),
	}
}

// resolve joins dir and name under the root and rejects any path that
// escapes it.
func (c *Cache) resolve(dir, name string) (string, bool) {
	p := filepath.Join(c.root, dir, name)
	rel, err := filepath.Rel(c.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return p, true
}

// File returns the content of name under dir. Unsafe paths, missing files
// and non-regular files all report not-found. Within the TTL window the
// cached bytes are returned without touching disk.
func (c *Cache) File(dir, name string) ([]byte, bool) {
	path, ok := c.resolve(dir, name)
	if !ok {
		return nil, false
	}
	if c.bypass {
		return readFile(path)
	}

	key := "f-" + dir + "/" + name
	if v, found := c.entries.Get(key); found {
		return v.([]byte), true
	}
	data, ok := readFile(path)
	if !ok {
		return nil, false
	}
	c.entries.Set(key, data, cache.DefaultExpiration)
	return data, true
}

// Text is File decoded as UTF-8. Content that does not decode reports
// not-found rather than an error.
func (c *Cache) Text(dir, name string) (string, bool) {
	data, ok := c.File(dir, name)
	if !ok || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// Sweep evicts expired entries. No-op in bypass mode, where nothing is
// cached to begin with.
func (c *Cache) Sweep() {
	if c.bypass {
		return
	}
	c.entries.DeleteExpired()
}

func readFile(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

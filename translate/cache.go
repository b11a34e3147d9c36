package translate

import (
	"strings"
	"sync"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/typeexpr"
)

// MarkerFunc reports the current modification marker for a schema identity
// (typically the file mtime rendered as text). A changed marker invalidates
// the cached entry for every key path under that identity.
type MarkerFunc func(id schematype.Identity) string

// Cache memoizes translations per (identity, key path) so the host sees a
// stable expression across repeated lookups. Instances are constructed
// explicitly; there is no package-level singleton.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	marker  MarkerFunc
}

type cacheEntry struct {
	expr   typeexpr.Expr
	marker string
}

// NewCache returns an empty cache. marker may be nil, in which case entries
// never go stale on their own; use Invalidate for push-style signals.
func NewCache(marker MarkerFunc) *Cache {
	return &Cache{entries: map[string]cacheEntry{}, marker: marker}
}

// GetOrCompute returns the cached expression for (id, path), computing it when
// absent or stale. compute runs outside the cache lock: translation can
// recurse into the resolver, which may consult the cache for a different key,
// and that re-entry must not deadlock.
func (c *Cache) GetOrCompute(id schematype.Identity, path []string, compute func() (typeexpr.Expr, error)) (typeexpr.Expr, error) {
	key := cacheKey(id, path)
	mark := ""
	if c.marker != nil {
		mark = c.marker(id)
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.marker == mark {
		c.mu.Unlock()
		return e.expr, nil
	}
	c.mu.Unlock()

	expr, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{expr: expr, marker: mark}
	c.mu.Unlock()
	return expr, nil
}

// Invalidate drops every entry for the identity, across all key paths. Wired
// to file-change signals (loader.Watcher) and host staleness notifications.
func (c *Cache) Invalidate(id schematype.Identity) {
	prefix := id.Key() + "\x00"
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(id schematype.Identity, path []string) string {
	return id.Key() + "\x00" + strings.Join(path, "\x00")
}

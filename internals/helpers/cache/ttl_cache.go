// file: internals/helpers/cache/ttl_cache.go
package cache

import (
	"sync"
	"time"
)

// TTLCache adalah cache in-process sederhana dengan umur entry tetap.
// Dipakai untuk memo handle worksheet (±60 dtk) dan hasil loader laporan;
// keduanya harus bisa di-invalidate eksplisit setelah submit sukses.
type TTLCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry

	now func() time.Time // dioverride di test
}

type entry struct {
	value     any
	expiresAt time.Time
}

func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:   ttl,
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate menghapus key tertentu; tanpa argumen = flush semua.
func (c *TTLCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.items = make(map[string]entry)
		return
	}
	for _, k := range keys {
		delete(c.items, k)
	}
}

func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

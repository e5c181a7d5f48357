package moby

import "sync"

// Lookup caches hold raw decoded records keyed by upstream identifier so a
// later projection can be re-derived without refetching. No TTL, no
// eviction; they live as long as the owning Service. Writes are
// last-write-wins.

type gameCache struct {
	mu sync.RWMutex
	m  map[int64]jsonObj
}

func newGameCache() *gameCache {
	return &gameCache{m: make(map[int64]jsonObj)}
}

func (c *gameCache) get(id int64) (jsonObj, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.m[id]
	return o, ok
}

func (c *gameCache) put(id int64, o jsonObj) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = o
}

// platformKey identifies a per-game platform detail record. The detail
// carries per-game release data, so keying by platform id alone would leak
// one game's release date into another.
type platformKey struct {
	gameID     int64
	platformID int64
}

type platformCache struct {
	mu sync.RWMutex
	m  map[platformKey]jsonObj
}

func newPlatformCache() *platformCache {
	return &platformCache{m: make(map[platformKey]jsonObj)}
}

func (c *platformCache) get(k platformKey) (jsonObj, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.m[k]
	return o, ok
}

func (c *platformCache) put(k platformKey, o jsonObj) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[k] = o
}

package services

import "sync"

// POICache memoizes provider lookups for the lifetime of the process. Keys
// are either "name_city", "city_center_<city>" or a raw POI id; values hold
// a raw provider response or a resolved PoiQueryResult. Entries are never
// evicted. Resolutions for a key are deterministic, so two writers racing on
// the same key just store equivalent values.
type POICache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

func NewPOICache() *POICache {
	return &POICache{entries: make(map[string]interface{})}
}

func (c *POICache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *POICache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *POICache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package cache

import (
	"github.com/dgraph-io/ristretto"

	"speedwatch-api-server/internal/models"
)

// Cache holds violation records by id. Records are immutable after insert and
// the only delete is delete-all, so a by-id entry can never go stale as long
// as Clear is called when the store is wiped. Aggregates and list results are
// never cached; they are recomputed on every read.
type Cache struct {
	cache *ristretto.Cache
}

func NewCache() (*Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,     // number of keys to track frequency of (1M).
		MaxCost:     1 << 24, // maximum cost of cache (16MB).
		BufferItems: 64,      // number of keys per Get buffer.
	})
	if err != nil {
		return nil, err
	}

	return &Cache{
		cache: cache,
	}, nil
}

func (c *Cache) Set(id uint, v *models.Violation) {
	c.cache.Set(uint64(id), v, 1)
}

func (c *Cache) Get(id uint) (*models.Violation, bool) {
	value, ok := c.cache.Get(uint64(id))
	if !ok {
		return nil, false
	}
	v, ok := value.(*models.Violation)
	return v, ok
}

// Clear drops every entry. Must be called after a delete-all.
func (c *Cache) Clear() {
	c.cache.Clear()
}

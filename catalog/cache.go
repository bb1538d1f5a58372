package catalog

import (
	"context"
	"sync"

	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Cache keeps the last catalogue read. Views are always derived from the
// current snapshot, never from intermediate results.
type Cache struct {
	source ProductLister

	mu       sync.RWMutex
	products []models.Product
	loading  bool
	loaded   bool
}

func NewCache(source ProductLister) *Cache {
	return &Cache{source: source}
}

// Load reads the catalogue. A failed read is logged and leaves the cache
// empty with loading cleared; there is no retry.
func (c *Cache) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	products, err := c.source.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.loaded = true
	if err != nil {
		logx.Error().Err(err).Msg("failed to load catalogue")
		c.products = nil
		return
	}
	SortByRecency(products)
	c.products = products
}

// Refresh reloads the catalogue after a product change notification.
func (c *Cache) Refresh(ctx context.Context, ev models.ProductEvent) {
	logx.Debug().Str("kind", string(ev.Kind)).Str("productId", ev.ProductID).Msg("refreshing catalogue")
	c.Load(ctx)
}

// Products returns a copy of the cached list, loading it on first use.
func (c *Cache) Products(ctx context.Context) []models.Product {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		c.Load(ctx)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Find returns the cached product with the given hex id.
func (c *Cache) Find(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.Id.Hex() == id {
			return p, true
		}
	}
	return models.Product{}, false
}

package cache

import (
	"context"
	"time"

	"factcheck/models"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache 进程内缓存
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(ctx context.Context) ([]models.TrendingClaim, bool) {
	if val, found := c.cache.Get(trendingKey); found {
		return copyClaims(val.([]models.TrendingClaim)), true
	}
	return nil, false
}

func (c *MemoryCache) Set(ctx context.Context, claims []models.TrendingClaim) {
	c.cache.SetDefault(trendingKey, copyClaims(claims))
}

func (c *MemoryCache) Invalidate(ctx context.Context) {
	c.cache.Delete(trendingKey)
}

package cache

import (
	"context"
	"fmt"
	"log"

	"factcheck/config"
	"factcheck/models"
)

const trendingKey = "factcheck:trending"

// TrendingCache 缓存热门声明计算结果，写入/删除记录后由调用方失效
type TrendingCache interface {
	Get(ctx context.Context) ([]models.TrendingClaim, bool)
	Set(ctx context.Context, claims []models.TrendingClaim)
	Invalidate(ctx context.Context)
}

// New 根据配置创建缓存
func New(cfg config.CacheConfig) (TrendingCache, error) {
	ttl := cfg.TTL()
	if ttl <= 0 {
		return Noop{}, nil
	}
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryCache(ttl), nil
	case "redis":
		return NewRedisCache(cfg.RedisURL, ttl)
	case "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("cache.driver 取值无效: %q", cfg.Driver)
	}
}

// Noop 不缓存，每次都重新计算
type Noop struct{}

func (Noop) Get(context.Context) ([]models.TrendingClaim, bool) { return nil, false }
func (Noop) Set(context.Context, []models.TrendingClaim)        {}
func (Noop) Invalidate(context.Context)                        {}

func logCacheError(op string, err error) {
	log.Printf("热门缓存%s失败: %v", op, err)
}

func copyClaims(in []models.TrendingClaim) []models.TrendingClaim {
	return append(make([]models.TrendingClaim, 0, len(in)), in...)
}


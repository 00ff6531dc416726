package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"factcheck/models"

	"github.com/redis/go-redis/v9"
)

// RedisCache 多实例部署共享的缓存
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache 通过 redis://... 地址创建缓存
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("解析 redis 地址失败: %w", err)
	}
	return NewRedisCacheWithClient(redis.NewClient(opt), ttl), nil
}

// NewRedisCacheWithClient 使用已有客户端
func NewRedisCacheWithClient(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]models.TrendingClaim, bool) {
	data, err := c.rdb.Get(ctx, trendingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logCacheError("读取", err)
		}
		return nil, false
	}
	var claims []models.TrendingClaim
	if err := json.Unmarshal(data, &claims); err != nil {
		logCacheError("解码", err)
		return nil, false
	}
	return claims, true
}

func (c *RedisCache) Set(ctx context.Context, claims []models.TrendingClaim) {
	data, err := json.Marshal(copyClaims(claims))
	if err != nil {
		logCacheError("编码", err)
		return
	}
	if err := c.rdb.Set(ctx, trendingKey, data, c.ttl).Err(); err != nil {
		logCacheError("写入", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, trendingKey).Err(); err != nil {
		logCacheError("失效", err)
	}
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

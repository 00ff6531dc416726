package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	if maxAttempts <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	// 令牌桶容量 maxAttempts，每 window/maxAttempts 补充一个
	allow := perIPLimiter(rate.Every(window/time.Duration(maxAttempts)), maxAttempts, 2*window)

	return func(c *gin.Context) {
		if !allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// perIPLimiter 按 IP 保存令牌桶，闲置超过 idle 的条目由 go-cache 清理
func perIPLimiter(limit rate.Limit, burst int, idle time.Duration) func(ip string) bool {
	limiters := gocache.New(idle, time.Minute)
	var mu sync.Mutex

	return func(ip string) bool {
		mu.Lock()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(limit, burst)
		}
		limiters.SetDefault(ip, limiter)
		mu.Unlock()
		return limiter.Allow()
	}
}

// ClaimRateLimit 核查提交限流（令牌桶），每 IP 每分钟 perMinute 次，允许 burst 次突发。
// 每次提交都会调用外部模型，超过则返回 429。perMinute <= 0 时不限流。
func ClaimRateLimit(perMinute, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	// 闲置 10 分钟的 IP 自动清理
	allow := perIPLimiter(rate.Limit(float64(perMinute)/60), burst, 10*time.Minute)

	return func(c *gin.Context) {
		if !allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "提交过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

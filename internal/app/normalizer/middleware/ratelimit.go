/**
 * 中间件:限流器中间件
 * @author: sun977
 * @date: 2026.02.14
 * @description: 定义限流器中间件
 * @func:
 *   - GinRateLimitMiddleware 默认限流器中间件[根据客户端IP进行限流]
 *   - GinRateLimitMiddlewareWithLimiter 通用限流中间件[可注入自定义限流器]
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"neonorm/internal/pkg/logger"
	"neonorm/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(key string) bool
	Reset(key string)
}

// TokenBucketLimiter 令牌桶限流器
type TokenBucketLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
	rate    int           // 每秒生成的令牌数
	burst   int           // 桶的容量
	cleanup time.Duration // 清理间隔
}

// TokenBucket 令牌桶
type TokenBucket struct {
	tokens   int       // 当前令牌数
	capacity int       // 桶容量
	rate     int       // 令牌生成速率（每秒）
	lastTime time.Time // 上次更新时间
	mutex    sync.Mutex
}

// NewTokenBucketLimiter 创建新的令牌桶限流器
func NewTokenBucketLimiter(rate, burst int, cleanup time.Duration) *TokenBucketLimiter {
	limiter := &TokenBucketLimiter{
		buckets: make(map[string]*TokenBucket),
		rate:    rate,
		burst:   burst,
		cleanup: cleanup,
	}

	// 启动清理协程
	go limiter.cleanupExpiredBuckets()

	return limiter
}

// Allow 检查是否允许请求
func (tbl *TokenBucketLimiter) Allow(key string) bool {
	tbl.mutex.Lock()
	bucket, exists := tbl.buckets[key]
	if !exists {
		bucket = &TokenBucket{
			tokens:   tbl.burst,
			capacity: tbl.burst,
			rate:     tbl.rate,
			lastTime: time.Now(),
		}
		tbl.buckets[key] = bucket
	}
	tbl.mutex.Unlock()

	return bucket.consume()
}

// Reset 重置指定key的限流状态
func (tbl *TokenBucketLimiter) Reset(key string) {
	tbl.mutex.Lock()
	delete(tbl.buckets, key)
	tbl.mutex.Unlock()
}

// consume 消费一个令牌
func (tb *TokenBucket) consume() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastTime).Seconds()

	// 添加新令牌
	newTokens := int(elapsed * float64(tb.rate))
	tb.tokens += newTokens
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}

	tb.lastTime = now

	// 尝试消费一个令牌
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

// cleanupExpiredBuckets 清理过期的令牌桶
func (tbl *TokenBucketLimiter) cleanupExpiredBuckets() {
	ticker := time.NewTicker(tbl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		tbl.mutex.Lock()
		now := time.Now()
		for key, bucket := range tbl.buckets {
			bucket.mutex.Lock()
			// 如果桶超过清理间隔时间没有使用，则删除
			if now.Sub(bucket.lastTime) > tbl.cleanup {
				delete(tbl.buckets, key)
			}
			bucket.mutex.Unlock()
		}
		tbl.mutex.Unlock()
	}
}

// GinRateLimitMiddleware 默认限流中间件
// 使用配置文件中的限流策略,限流器全局只创建一次
func (m *MiddlewareManager) GinRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否启用限流
		if !m.securityConfig.RateLimit.Enabled {
			c.Next()
			return
		}

		// 检查是否跳过限流
		if m.shouldSkipRateLimit(c) {
			c.Next()
			return
		}

		// 获取客户端IP作为限流key
		clientIP := utils.GetClientIP(c)

		limiter := m.getRateLimiter()

		// 检查是否允许请求
		if !limiter.Allow(clientIP) {
			// 记录限流日志
			logger.WithFields(map[string]interface{}{
				"operation": "rate_limit_exceeded",
				"option":    "block_request",
				"func_name": "middleware.ratelimit.GinRateLimitMiddleware",
				"client_ip": clientIP,
				"path":      c.Request.URL.Path,
				"method":    c.Request.Method,
			}).Warn("Rate limit exceeded for client")

			statusCode := m.securityConfig.RateLimit.StatusCode
			if statusCode == 0 {
				statusCode = http.StatusTooManyRequests
			}
			message := m.securityConfig.RateLimit.Message
			if message == "" {
				message = "Too many requests, please try again later"
			}

			c.JSON(statusCode, gin.H{
				"error":   "Rate limit exceeded",
				"message": message,
				"code":    "RATE_LIMIT_EXCEEDED",
			})
			c.Abort()
			return
		}

		// 继续处理请求
		c.Next()
	}
}

// GinRateLimitMiddlewareWithLimiter 通用限流中间件
// 基于IP地址进行限流，可注入自定义限流器
func (m *MiddlewareManager) GinRateLimitMiddlewareWithLimiter(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)

		if !limiter.Allow(clientIP) {
			logger.WithFields(map[string]interface{}{
				"operation": "rate_limit_exceeded",
				"option":    "block_request",
				"func_name": "middleware.ratelimit.GinRateLimitMiddlewareWithLimiter",
				"client_ip": clientIP,
				"path":      c.Request.URL.Path,
				"method":    c.Request.Method,
			}).Warn("Rate limit exceeded for client")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests, please try again later",
				"code":    "RATE_LIMIT_EXCEEDED",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// shouldSkipRateLimit 检查是否应该跳过限流
func (m *MiddlewareManager) shouldSkipRateLimit(c *gin.Context) bool {
	path := c.Request.URL.Path

	// 检查跳过路径
	for _, skipPath := range m.securityConfig.RateLimit.SkipPaths {
		if path == skipPath {
			return true
		}
	}

	return false
}

// getRateLimiter 根据配置获取限流器，全局单例
func (m *MiddlewareManager) getRateLimiter() RateLimiter {
	m.rateLimiterOnce.Do(func() {
		cfg := &m.securityConfig.RateLimit
		rate := cfg.RequestsPerSecond
		if rate <= 0 {
			rate = 100
		}
		burst := cfg.BurstSize
		if burst <= 0 {
			burst = rate
		}
		m.rateLimiter = NewTokenBucketLimiter(rate, burst, 15*time.Minute)
	})
	return m.rateLimiter
}

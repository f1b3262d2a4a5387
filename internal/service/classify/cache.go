/**
 * 服务:分类器响应缓存
 * @author: sun977
 * @date: 2026.02.12
 * @description: 基于Redis的分类器响应缓存,相同输入跨记录/跨运行复用后端结果
 * @note: 缓存不可用时静默穿透,绝不影响分类流程
 */
package classify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// defaultCacheTTL 缓存默认过期时间
const defaultCacheTTL = 24 * time.Hour

// ResponseCache 分类器响应缓存
// client 为 nil 时所有操作都是空操作
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache 创建响应缓存
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// cacheKey 生成缓存键 [KEY:neonorm:classify:{purpose}:{sha1(input)}]
func (c *ResponseCache) cacheKey(purpose, input string) string {
	sum := sha1.Sum([]byte(input))
	return fmt.Sprintf("neonorm:classify:%s:%s", purpose, hex.EncodeToString(sum[:]))
}

// Get 查询缓存的后端响应
func (c *ResponseCache) Get(ctx context.Context, purpose, input string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, c.cacheKey(purpose, input)).Result()
	if err != nil {
		// redis.Nil 表示未命中,其他错误同样按未命中处理
		return "", false
	}
	return val, true
}

// Set 写入后端响应
func (c *ResponseCache) Set(ctx context.Context, purpose, input, response string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, c.cacheKey(purpose, input), response, c.ttl).Err()
}

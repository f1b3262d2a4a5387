package middleware

import (
	"sync"

	"neonorm/internal/config"
)

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	securityConfig  *config.SecurityConfig // 安全配置，用于中间件配置
	rateLimiter     RateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
// 参数:
//   - securityConfig: 安全配置实例
//
// 返回: 中间件管理器实例
func NewMiddlewareManager(securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		securityConfig: securityConfig,
	}
}

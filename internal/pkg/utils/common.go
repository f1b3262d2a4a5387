/*
 * @author: sun977
 * @date: 2025.11.12
 * @description: 通用的工具包
 * @func:
 */

package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

// ContextKeyClientIP 标准上下文中存储客户端IP的统一键
const ContextKeyClientIP ContextKey = "client_ip"

// GetClientIP 从 Gin 上下文中提取客户端IP
// 优先使用 gin 自带的 ClientIP()（已处理 X-Forwarded-For / X-Real-IP），
// 再做一次标准化，去掉端口和 IPv4-mapped 前缀
func GetClientIP(c *gin.Context) string {
	return NormalizeIP(c.ClientIP())
}

// WithClientIP 将客户端IP写入标准上下文（统一键）
// 用法示例：ctx = utils.WithClientIP(ctx, clientIP)
func WithClientIP(ctx context.Context, clientIP string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIP, clientIP)
}

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 适用范围：service 层以下获取当前 clientIP 使用
// 说明：
// - 使用 ContextKeyClientIP 作为唯一键，保证读写一致，跨包可用
// - 如果不存在或类型不匹配，返回空字符串
func GetClientIPFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyClientIP)
	if ip, ok := v.(string); ok {
		return ip
	}
	return ""
}

/**
 * 中间件:日志相关中间件
 * @author: sun977
 * @date: 2026.02.14
 * @description: 定义日志中间件
 * @func:
 *   - GinLoggingMiddleware Gin日志中间件[同时把客户端IP存储到Gin上下文和标准上下文,供后续使用]
 */
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"neonorm/internal/pkg/logger"
	"neonorm/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinLoggingMiddleware Gin日志中间件
// 记录所有HTTP请求的访问日志和错误日志
// 使用方式: router.Use(middlewareManager.GinLoggingMiddleware())
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 提取并格式化客户端IP
		clientIP := utils.GetClientIP(c)
		XRequestID := c.GetHeader("X-Request-ID")

		// 存储到Gin上下文
		c.Set("client_ip", clientIP)

		// 存储到标准上下文
		// handler以下的逻辑都使用标准上下文,这里用统一键写入,
		// 后续通过 utils.GetClientIPFromContext(ctx) 读取
		ctx := utils.WithClientIP(c.Request.Context(), clientIP)
		c.Request = c.Request.WithContext(ctx)

		// 处理请求
		c.Next()

		// 记录访问日志
		logger.LogAccessRequest(c, start, XRequestID)

		// 如果是错误状态码，记录错误日志
		statusCode := c.Writer.Status()
		if statusCode >= 400 {
			errorMsg := ""
			if errors := c.Errors; len(errors) > 0 {
				errorMsg = errors.String()
			} else {
				errorMsg = http.StatusText(statusCode)
			}

			logger.LogBusinessError(
				fmt.Errorf("HTTP %d: %s", statusCode, errorMsg),
				XRequestID,
				statusCode,
				clientIP,
				c.Request.URL.String(),
				c.Request.Method,
				map[string]interface{}{
					"operation":   "http_request",
					"method":      c.Request.Method,
					"status_code": statusCode,
					"timestamp":   logger.NowFormatted(),
				},
			)
		}
	}
}

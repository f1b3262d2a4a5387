/**
 * 路由:资产清单归一化路由
 * @author: sun977
 * @date: 2026.02.14
 * @description: 包含记录归一化与分类器调用审计路由
 * @func:
 */

package router

import (
	"net/http"

	"neonorm/internal/model"
	"neonorm/internal/service/classify"

	"github.com/gin-gonic/gin"
)

// setupInventoryRoutes 设置资产清单归一化路由
func (r *Router) setupInventoryRoutes(v1 *gin.RouterGroup) {
	inventory := v1.Group("/inventory")
	{
		// 批量归一化
		inventory.POST("/normalize", r.normalizeHandler.NormalizeBatch)
		// 单条归一化
		inventory.POST("/normalize/record", r.normalizeHandler.NormalizeRecord)
		// 分类器调用审计
		inventory.GET("/audit", r.classifierAudit)
	}
}

// classifierAudit 分类器调用审计处理器
// 返回进程启动以来记录的全部分类器调用
func (r *Router) classifierAudit(c *gin.Context) {
	calls := r.auditLog.Snapshot()
	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Classifier invocations fetched successfully",
		Data: gin.H{
			"total":        len(calls),
			"owner_calls":  r.auditLog.CountByPurpose(classify.PurposeOwnerParsing),
			"device_calls": r.auditLog.CountByPurpose(classify.PurposeDeviceTypeClass),
			"calls":        calls,
		},
	})
}

/**
 * 处理器:资产清单归一化接口
 * @author: sun977
 * @date: 2026.02.14
 * @description: 资产记录归一化相关的HTTP请求处理
 * @func: NormalizeBatch 批量归一化 / NormalizeRecord 单条归一化
 */
package inventory

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"neonorm/internal/model"
	invModel "neonorm/internal/model/inventory"
	"neonorm/internal/pkg/logger"
	"neonorm/internal/pkg/utils"
	"neonorm/internal/service/normalize"
)

// NormalizeHandler 处理资产清单归一化的HTTP请求
type NormalizeHandler struct {
	runner       *normalize.BatchRunner
	pipeline     *normalize.Pipeline
	maxBatchSize int
}

// NewNormalizeHandler 创建 NormalizeHandler 实例
func NewNormalizeHandler(pipeline *normalize.Pipeline, runner *normalize.BatchRunner, maxBatchSize int) *NormalizeHandler {
	if maxBatchSize <= 0 {
		maxBatchSize = 10000
	}
	return &NormalizeHandler{
		runner:       runner,
		pipeline:     pipeline,
		maxBatchSize: maxBatchSize,
	}
}

// normalizeBatchRequest 批量归一化请求体
type normalizeBatchRequest struct {
	Records []*invModel.RawRecord `json:"records" binding:"required"` // 原始记录列表
}

// NormalizeBatch 批量归一化接口
// 路由: POST /api/v1/inventory/normalize
func (h *NormalizeHandler) NormalizeBatch(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	XRequestID := c.GetHeader("X-Request-ID")
	pathUrl := c.Request.URL.String()

	var req normalizeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.LogBusinessError(
			err,
			XRequestID,
			0,
			clientIP,
			pathUrl,
			"POST",
			map[string]interface{}{
				"operation": "normalize_batch",
				"option":    "bindJSON",
			},
		)
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "records is required",
		})
		return
	}

	if len(req.Records) > h.maxBatchSize {
		logger.LogBusinessError(
			fmt.Errorf("batch size %d exceeds limit %d", len(req.Records), h.maxBatchSize),
			XRequestID,
			0,
			clientIP,
			pathUrl,
			"POST",
			map[string]interface{}{
				"operation": "normalize_batch",
				"option":    "sizeValidation",
			},
		)
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: fmt.Sprintf("batch size exceeds limit of %d records", h.maxBatchSize),
		})
		return
	}

	ctx := utils.WithClientIP(c.Request.Context(), clientIP)
	result := h.runner.Run(ctx, req.Records)

	logger.LogBusinessOperation(
		"normalize_batch",
		clientIP,
		XRequestID,
		"success",
		"batch normalized",
		map[string]interface{}{
			"total":     len(req.Records),
			"anomalies": len(result.Anomalies),
		},
	)

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Records normalized successfully",
		Data: model.NormalizeBatchResponse{
			Total:     len(result.Records),
			Anomalies: len(result.Anomalies),
			Records:   result.Records,
			Issues:    result.Anomalies,
		},
	})
}

// normalizeRecordResponse 单条归一化响应体
type normalizeRecordResponse struct {
	Record  *invModel.NormalizedRecord `json:"record"`            // 归一化记录
	Anomaly *invModel.Anomaly          `json:"anomaly,omitempty"` // 异常,无问题时缺省
}

// NormalizeRecord 单条归一化接口
// 路由: POST /api/v1/inventory/normalize/record
func (h *NormalizeHandler) NormalizeRecord(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	XRequestID := c.GetHeader("X-Request-ID")
	pathUrl := c.Request.URL.String()

	var raw invModel.RawRecord
	if err := c.ShouldBindJSON(&raw); err != nil {
		logger.LogBusinessError(
			err,
			XRequestID,
			0,
			clientIP,
			pathUrl,
			"POST",
			map[string]interface{}{
				"operation": "normalize_record",
				"option":    "bindJSON",
			},
		)
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	ctx := utils.WithClientIP(c.Request.Context(), clientIP)
	record, anomaly := h.pipeline.ProcessRecord(ctx, &raw)

	logger.LogBusinessOperation(
		"normalize_record",
		clientIP,
		XRequestID,
		"success",
		"record normalized",
		map[string]interface{}{
			"source_row_id": raw.SourceRowID,
			"has_anomaly":   anomaly != nil,
		},
	)

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Record normalized successfully",
		Data: normalizeRecordResponse{
			Record:  record,
			Anomaly: anomaly,
		},
	})
}

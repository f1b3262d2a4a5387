/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.08.29
 * @description: API响应数据模型，包含各种业务操作的响应结构体
 * @func: 各种Response结构体定义
 */
package model

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int               `json:"code,omitempty"`   // 响应状态码，可选
	Status  string            `json:"status"`           // 响应状态："success" 或 "error"
	Message string            `json:"message"`          // 响应消息
	Data    interface{}       `json:"data,omitempty"`   // 响应数据，可选
	Error   string            `json:"error,omitempty"`  // 错误信息，可选
	Errors  []ValidationError `json:"errors,omitempty"` // 验证错误列表，可选
}

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizeBatchResponse 批量规范化响应结构
type NormalizeBatchResponse struct {
	Total     int         `json:"total"`     // 输入记录总数
	Anomalies int         `json:"anomalies"` // 异常记录数
	Records   interface{} `json:"records"`   // 规范化后的记录列表
	Issues    interface{} `json:"issues"`    // 异常报告列表
}

// 自定义日志格式化器
package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
// 返回格式:"2006-01-02 15:04:05.000"
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// NowFormatted 返回当前时间的格式化字符串
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogType 日志类型枚举
type LogType string

const (
	// AccessLog 访问日志 - 记录HTTP请求和API调用
	AccessLog LogType = "access"
	// BusinessLog 业务日志 - 记录归一化/分类等业务操作
	BusinessLog LogType = "business"
	// ErrorLog 错误日志 - 记录系统错误和异常
	ErrorLog LogType = "error"
	// SystemLog 系统日志 - 记录系统运行状态
	SystemLog LogType = "system"
)

// LogAccessRequest 记录HTTP访问日志
// 用于记录所有HTTP请求的详细信息,包括响应时间、状态码等
func LogAccessRequest(c *gin.Context, startTime time.Time, requestID string) {
	if LoggerInstance == nil {
		return
	}

	responseTime := time.Since(startTime).Milliseconds()

	LoggerInstance.logger.WithFields(logrus.Fields{
		"type":          AccessLog,
		"method":        c.Request.Method,
		"path":          c.Request.URL.Path,
		"query":         c.Request.URL.RawQuery,
		"status_code":   c.Writer.Status(),
		"response_time": responseTime,
		"client_ip":     c.ClientIP(),
		"user_agent":    c.Request.UserAgent(),
		"request_id":    requestID,
		"request_size":  c.Request.ContentLength,
		"response_size": int64(c.Writer.Size()),
	}).Info("HTTP request processed")
}

// LogBusinessOperation 记录业务操作日志
// 用于记录批量归一化、记录提交等业务操作
func LogBusinessOperation(operation string, clientIP, requestID, result, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":       BusinessLog,
		"operation":  operation,
		"client_ip":  clientIP,
		"result":     result,
		"message":    message,
		"request_id": requestID,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	// 根据结果选择日志级别
	if result == "success" {
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("Business operation: %s", operation))
	} else {
		LoggerInstance.logger.WithFields(fields).Warn(fmt.Sprintf("Business operation failed: %s", operation))
	}
}

// LogBusinessError 记录业务处理中的错误
// operation 标识出错的业务动作,layer 标识出错层(HANDLER/SERVICE)
func LogBusinessError(err error, requestID string, code int, clientIP, operation, layer string, extraFields map[string]interface{}) {
	if LoggerInstance == nil || err == nil {
		return
	}

	fields := logrus.Fields{
		"type":       ErrorLog,
		"error":      err.Error(),
		"request_id": requestID,
		"code":       code,
		"client_ip":  clientIP,
		"operation":  operation,
		"layer":      layer,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Errorf("Business error occurred: %s", err.Error())
}

// LogSystemEvent 记录系统事件日志
// 用于记录系统启动、关闭、组件状态变化等系统级事件
func LogSystemEvent(component, event, message string, level logrus.Level, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
		"message":   message,
		"level":     level.String(),
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	switch level {
	case logrus.DebugLevel:
		LoggerInstance.logger.WithFields(fields).Debug(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.WarnLevel:
		LoggerInstance.logger.WithFields(fields).Warn(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.ErrorLevel:
		LoggerInstance.logger.WithFields(fields).Error(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.FatalLevel:
		LoggerInstance.logger.WithFields(fields).Fatal(fmt.Sprintf("System event: %s - %s", component, event))
	default:
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("System event: %s - %s", component, event))
	}
}

/**
 * 服务:分类器契约
 * @author: sun977
 * @date: 2026.02.12
 * @description: 责任人解析与设备类型分类的能力接口定义
 * @func: OwnerParser / DeviceClassifier 接口与调用观察者契约
 * @note: 接口对模型后端和规则后端多态,失败只降级不上抛
 */
package classify

import (
	"context"
	"strings"
	"time"
)

// 调用目的标识,审计日志按此分组
const (
	PurposeOwnerParsing    = "owner_parsing"
	PurposeDeviceTypeClass = "device_type_classification"
)

// KnownDeviceTypes 已知设备类型集合
// 显式给出且命中该集合时直接采信,置信度 high,不调用任何后端
var KnownDeviceTypes = []string{
	"server", "router", "switch", "printer", "iot", "firewall", "access point", "workstation",
}

// OwnerResult 责任人解析结果
type OwnerResult struct {
	Name  string `json:"name"`  // 人名
	Email string `json:"email"` // 邮箱
	Team  string `json:"team"`  // 团队
}

// DeviceInput 设备分类输入
type DeviceInput struct {
	Hostname     string // 主机名
	Notes        string // 备注
	IP           string // IP地址
	ExplicitType string // 显式给出的设备类型
}

// DeviceResult 设备分类结果
type DeviceResult struct {
	DeviceType string `json:"device_type"` // 设备类型
	Confidence string `json:"confidence"`  // high / medium / low
}

// OwnerParser 责任人解析器接口
// 空输入直接返回全空结果,不调用后端;任何后端错误内部降级,永不失败
type OwnerParser interface {
	Parse(ctx context.Context, rawText, rowID string) OwnerResult
}

// DeviceClassifier 设备类型分类器接口
// 显式已知类型短路返回;后端失败降级到关键词匹配,永不失败
type DeviceClassifier interface {
	Classify(ctx context.Context, input DeviceInput, rowID string) DeviceResult
}

// Invocation 一次分类器调用的审计记录
type Invocation struct {
	Purpose      string                 `json:"purpose"`       // owner_parsing / device_type_classification
	SourceRowID  string                 `json:"source_row_id"` // 来源行ID
	Prompt       string                 `json:"prompt"`        // 发送给后端的提示词(规则后端为空)
	Response     string                 `json:"response"`      // 后端原始响应
	Parsed       map[string]interface{} `json:"parsed"`        // 解析出的结构化结果
	UsedFallback bool                   `json:"used_fallback"` // 是否走了规则降级
	Cached       bool                   `json:"cached"`        // 是否命中缓存
	Timestamp    time.Time              `json:"timestamp"`     // 调用时间
}

// InvocationObserver 调用观察者
// 可选注入,记录每次分类器调用;不注入不影响正确性
type InvocationObserver interface {
	Observe(inv Invocation)
}

// explicitKnownType 显式类型短路判断
// 小写后命中已知集合则直接采信
func explicitKnownType(explicit string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(explicit))
	for _, known := range KnownDeviceTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// notifyObserver 通知观察者,nil安全
func notifyObserver(obs InvocationObserver, inv Invocation) {
	if obs == nil {
		return
	}
	inv.Timestamp = time.Now()
	obs.Observe(inv)
}

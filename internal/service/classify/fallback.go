/**
 * 服务:规则降级分类器
 * @author: sun977
 * @date: 2026.02.12
 * @description: 不依赖模型后端的确定性责任人解析与设备类型分类
 * @func: FallbackOwnerParser / FallbackDeviceClassifier
 */
package classify

import (
	"context"
	"regexp"
	"strings"

	"neonorm/internal/model/inventory"
)

// 责任人文本的固定抽取模式
var (
	ownerEmailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	ownerTeamRe  = regexp.MustCompile(`\(([^)]+)\)`)
)

// deviceKeywordRule 设备类型关键词规则
type deviceKeywordRule struct {
	deviceType string
	keywords   []string
}

// deviceKeywordRules 关键词规则,按固定优先级排列,先命中先得
var deviceKeywordRules = []deviceKeywordRule{
	{"server", []string{"srv", "server", "db", "host", "sql", "web", "app"}},
	{"router", []string{"rtr", "router", "gw", "gateway", "edge"}},
	{"switch", []string{"sw", "switch", "core"}},
	{"printer", []string{"print", "printer"}},
	{"iot", []string{"cam", "camera", "iot", "sensor"}},
	{"access point", []string{"ap", "access", "wireless", "wifi"}},
	{"firewall", []string{"fw", "firewall"}},
	{"workstation", []string{"pc", "laptop", "desktop", "workstation"}},
}

// FallbackOwnerParser 规则责任人解析器
// 邮箱取第一个标准 local@domain.tld 匹配,团队取第一个括号组内容,
// 姓名为移除两者后修剪标点的剩余文本
type FallbackOwnerParser struct {
	observer InvocationObserver
}

// NewFallbackOwnerParser 创建规则责任人解析器
func NewFallbackOwnerParser(observer InvocationObserver) *FallbackOwnerParser {
	return &FallbackOwnerParser{observer: observer}
}

// Parse 解析责任人文本
func (p *FallbackOwnerParser) Parse(_ context.Context, rawText, rowID string) OwnerResult {
	result := ExtractOwner(rawText)
	if strings.TrimSpace(rawText) == "" {
		return result
	}
	notifyObserver(p.observer, Invocation{
		Purpose:      PurposeOwnerParsing,
		SourceRowID:  rowID,
		UsedFallback: true,
		Parsed: map[string]interface{}{
			"parsed_name":  result.Name,
			"parsed_email": result.Email,
			"parsed_team":  result.Team,
		},
	})
	return result
}

// ExtractOwner 确定性责任人抽取
// 空输入返回全空结果,供模型后端失败时复用
func ExtractOwner(rawText string) OwnerResult {
	o := strings.TrimSpace(rawText)
	if o == "" {
		return OwnerResult{}
	}

	email := ownerEmailRe.FindString(o)
	team := ""
	teamGroup := ownerTeamRe.FindStringSubmatch(o)
	if len(teamGroup) == 2 {
		team = strings.TrimSpace(teamGroup[1])
	}

	name := o
	if email != "" {
		name = strings.TrimSpace(strings.Replace(name, email, "", 1))
	}
	if len(teamGroup) == 2 {
		name = strings.TrimSpace(strings.Replace(name, teamGroup[0], "", 1))
	}
	name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), ","))

	return OwnerResult{Name: name, Email: email, Team: team}
}

// FallbackDeviceClassifier 关键词设备分类器
// 对 hostname+" "+notes 做大小写不敏感的子串匹配,按固定优先级取首个命中
type FallbackDeviceClassifier struct {
	observer InvocationObserver
}

// NewFallbackDeviceClassifier 创建关键词设备分类器
func NewFallbackDeviceClassifier(observer InvocationObserver) *FallbackDeviceClassifier {
	return &FallbackDeviceClassifier{observer: observer}
}

// Classify 分类设备类型
func (c *FallbackDeviceClassifier) Classify(_ context.Context, input DeviceInput, rowID string) DeviceResult {
	if t, ok := explicitKnownType(input.ExplicitType); ok {
		return DeviceResult{DeviceType: t, Confidence: inventory.ConfidenceHigh}
	}

	result := MatchDeviceKeywords(input.Hostname, input.Notes)
	notifyObserver(c.observer, Invocation{
		Purpose:      PurposeDeviceTypeClass,
		SourceRowID:  rowID,
		UsedFallback: true,
		Parsed: map[string]interface{}{
			"classification": result.DeviceType,
			"confidence":     result.Confidence,
		},
	})
	return result
}

// MatchDeviceKeywords 关键词匹配
// 命中返回 medium,全部未命中返回 unknown/low,供模型后端失败时复用
func MatchDeviceKeywords(hostname, notes string) DeviceResult {
	clues := strings.ToLower(hostname + " " + notes)
	for _, rule := range deviceKeywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(clues, kw) {
				return DeviceResult{DeviceType: rule.deviceType, Confidence: inventory.ConfidenceMedium}
			}
		}
	}
	return DeviceResult{DeviceType: "unknown", Confidence: inventory.ConfidenceLow}
}

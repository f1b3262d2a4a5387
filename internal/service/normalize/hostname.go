/**
 * 服务:主机名与FQDN校验
 * @author: sun977
 * @date: 2026.02.11
 * @description: RFC 1123 标签规则的主机名/FQDN校验与一致性检查
 * @func: ValidateHostname / ValidateFQDN / CheckFQDNConsistency
 */
package normalize

import (
	"strings"

	"neonorm/internal/model/inventory"
)

// maxHostnameLength 主机名总长度上限 (RFC 1123)
const maxHostnameLength = 253

// maxLabelLength 单个标签长度上限
const maxLabelLength = 63

// isValidLabel RFC 1123 标签规则
// 长度1-63,首尾必须是字母或数字,中间允许字母/数字/连字符
// 等价正则: ^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$
// 这里用显式字节判断,避免对正则引擎的依赖
func isValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > maxLabelLength {
		return false
	}
	if !isAlphanumeric(label[0]) || !isAlphanumeric(label[n-1]) {
		return false
	}
	for i := 1; i < n-1; i++ {
		if !isAlphanumeric(label[i]) && label[i] != '-' {
			return false
		}
	}
	return true
}

// isAlphanumeric 判断是否为ASCII字母或数字
func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ValidateHostname 校验单标签主机名
// trim后非空,总长不超过253,且整体满足标签规则
func ValidateHostname(raw string) inventory.FieldOutcome {
	h := strings.TrimSpace(raw)
	if h == "" {
		return fieldInvalid(h, inventory.ReasonMissing)
	}
	if len(h) > maxHostnameLength {
		return fieldInvalid(h, inventory.ReasonTooLong)
	}
	if !isValidLabel(h) {
		return fieldInvalid(h, inventory.ReasonInvalidFormat)
	}
	return fieldValid(h)
}

// ValidateFQDN 校验FQDN
// trim后非空,至少包含一个".",每个点分标签都满足标签规则
func ValidateFQDN(raw string) inventory.FieldOutcome {
	f := strings.TrimSpace(raw)
	if f == "" {
		return fieldInvalid(f, inventory.ReasonMissing)
	}
	if !strings.Contains(f, ".") {
		return fieldInvalid(f, inventory.ReasonMissingDomain)
	}
	for _, label := range strings.Split(f, ".") {
		if len(label) == 0 || len(label) > maxLabelLength {
			return fieldInvalid(f, inventory.ReasonInvalidLabelLen)
		}
		if !isValidLabel(label) {
			return fieldInvalid(f, inventory.ReasonInvalidLabelFmt)
		}
	}
	return fieldValid(f)
}

// CheckFQDNConsistency 检查FQDN是否以主机名开头
// 大小写不敏感;要求两者均非空,与各自是否通过校验无关
func CheckFQDNConsistency(hostname, fqdn string) bool {
	if hostname == "" || fqdn == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(fqdn), strings.ToLower(hostname)+".")
}

// fieldValid 构造成功结果
func fieldValid(canonical string) inventory.FieldOutcome {
	return inventory.FieldOutcome{Valid: true, Canonical: canonical, Reason: inventory.ReasonOK}
}

// fieldInvalid 构造失败结果,原值原样保留
func fieldInvalid(value, reason string) inventory.FieldOutcome {
	return inventory.FieldOutcome{Valid: false, Canonical: value, Reason: reason}
}

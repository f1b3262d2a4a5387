/**
 * 服务:IPv4校验与归一化
 * @author: sun977
 * @date: 2026.02.11
 * @description: 纯规则的IPv4解析/规范化/作用域分类/子网与反向指针推导
 * @func: ValidateIPv4 / ClassifyIPv4Scope / DefaultSubnet / ReversePtr
 */
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"neonorm/internal/model/inventory"
)

// IPv4Outcome IPv4校验结果
// 在通用 FieldOutcome 之外额外携带版本号
type IPv4Outcome struct {
	inventory.FieldOutcome
	Version string // "4" / "6" / ""
}

// ValidateIPv4 校验并规范化IPv4地址
// 规则固定:空/N\A视为缺失;含":"或"%"判定为IPv6仅识别不处理;
// 必须恰好4个非空十进制段,每段0-255;规范形式去除前导零
func ValidateIPv4(raw string) IPv4Outcome {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "N/A") {
		return ipv4Invalid(raw, "", inventory.ReasonMissing)
	}

	// IPv6 只识别不归一化
	if strings.ContainsAny(s, ":%") {
		return ipv4Invalid(s, "6", inventory.ReasonIPv6Detected)
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return ipv4Invalid(s, "", inventory.ReasonWrongPartCount)
	}

	canonical := make([]string, 0, 4)
	for _, p := range parts {
		if p == "" {
			return ipv4Invalid(s, "", inventory.ReasonEmptyOctet)
		}
		if strings.HasPrefix(p, "-") {
			return ipv4Invalid(s, "", inventory.ReasonNegativeOctet)
		}
		if !isAllDigits(p) {
			return ipv4Invalid(s, "", inventory.ReasonNonNumericOctet)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v > 255 {
			return ipv4Invalid(s, "", inventory.ReasonOctetOutOfRange)
		}
		canonical = append(canonical, strconv.Itoa(v))
	}

	return IPv4Outcome{
		FieldOutcome: inventory.FieldOutcome{
			Valid:     true,
			Canonical: strings.Join(canonical, "."),
			Reason:    inventory.ReasonOK,
		},
		Version: "4",
	}
}

// ipv4Invalid 构造失败结果,原值原样保留
func ipv4Invalid(value, version, reason string) IPv4Outcome {
	return IPv4Outcome{
		FieldOutcome: inventory.FieldOutcome{
			Valid:     false,
			Canonical: value,
			Reason:    reason,
		},
		Version: version,
	}
}

// isAllDigits 判断字符串是否全部为ASCII数字
func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ClassifyIPv4Scope 对规范化后的IPv4地址做作用域分类
// 输入必须是 ValidateIPv4 成功后的规范形式
func ClassifyIPv4Scope(canonical string) string {
	octets, ok := splitOctets(canonical)
	if !ok {
		return ""
	}

	switch {
	case octets[0] == 10:
		return inventory.ScopePrivateRFC1918
	case octets[0] == 172 && octets[1] >= 16 && octets[1] <= 31:
		return inventory.ScopePrivateRFC1918
	case octets[0] == 192 && octets[1] == 168:
		return inventory.ScopePrivateRFC1918
	case octets[0] == 169 && octets[1] == 254:
		return inventory.ScopeLinkLocalAPIPA
	case octets[0] == 127:
		return inventory.ScopeLoopback
	}
	return inventory.ScopePublicOrOther
}

// DefaultSubnet 推导默认子网CIDR
// 仅私有RFC1918地址推导 {o1}.{o2}.{o3}.0/24,其他作用域返回空
func DefaultSubnet(canonical string) string {
	if ClassifyIPv4Scope(canonical) != inventory.ScopePrivateRFC1918 {
		return ""
	}
	octets, ok := splitOctets(canonical)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.0/24", octets[0], octets[1], octets[2])
}

// ReversePtr 生成反向解析指针 {o4}.{o3}.{o2}.{o1}.in-addr.arpa
// 无效地址返回空
func ReversePtr(canonical string, valid bool) string {
	if !valid {
		return ""
	}
	parts := strings.Split(canonical, ".")
	if len(parts) != 4 {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s.%s.in-addr.arpa", parts[3], parts[2], parts[1], parts[0])
}

// splitOctets 把规范IPv4拆成4个整数段
func splitOctets(canonical string) ([4]int, bool) {
	var octets [4]int
	parts := strings.Split(canonical, ".")
	if len(parts) != 4 {
		return octets, false
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return octets, false
		}
		octets[i] = v
	}
	return octets, true
}

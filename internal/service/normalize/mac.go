/**
 * 服务:MAC地址归一化
 * @author: sun977
 * @date: 2026.02.11
 * @description: MAC地址文本规范化为小写冒号分隔的固定形式
 * @func: NormalizeMAC
 */
package normalize

import (
	"strings"

	"neonorm/internal/model/inventory"
)

// NormalizeMAC 归一化MAC地址
// 去除 - : . 分隔符后必须恰好12个十六进制字符,
// 规范形式为小写并每2位插入冒号: aa:bb:cc:dd:ee:ff
func NormalizeMAC(raw string) inventory.FieldOutcome {
	m := strings.TrimSpace(raw)
	if m == "" {
		return fieldInvalid("", inventory.ReasonMissing)
	}

	cleaned := strings.NewReplacer("-", "", ":", "", ".", "").Replace(m)
	if len(cleaned) != 12 || !isAllHex(cleaned) {
		return fieldInvalid(m, inventory.ReasonInvalidFormat)
	}

	lower := strings.ToLower(cleaned)
	pairs := make([]string, 0, 6)
	for i := 0; i < 12; i += 2 {
		pairs = append(pairs, lower[i:i+2])
	}
	return fieldValid(strings.Join(pairs, ":"))
}

// isAllHex 判断字符串是否全部为十六进制字符
func isAllHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return len(s) > 0
}

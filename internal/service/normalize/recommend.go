/**
 * 服务:修复建议生成
 * @author: sun977
 * @date: 2026.02.13
 * @description: 把字段问题映射为可执行的修复建议,映射由字段+原因码驱动
 * @func: GenerateRecommendations
 */
package normalize

import (
	"strings"

	"neonorm/internal/model/inventory"
)

// GenerateRecommendations 按问题顺序生成修复建议,与问题一一对应
// 没有任何问题命中规则时给出兜底建议(防御性,正常不可达)
func GenerateRecommendations(issues []inventory.Issue) []string {
	recommendations := make([]string, 0, len(issues))

	for _, issue := range issues {
		switch issue.Field {
		case FieldIP:
			switch {
			case strings.Contains(issue.Type, "out_of_range"):
				recommendations = append(recommendations, "Correct IP octets to valid range (0-255)")
			case strings.Contains(issue.Type, "wrong_part_count"):
				recommendations = append(recommendations, "Verify IP address has exactly 4 octets")
			case strings.Contains(issue.Type, "ipv6"):
				recommendations = append(recommendations, "Use IPv4 address or update schema to support IPv6")
			default:
				recommendations = append(recommendations, "Correct or validate IP address format")
			}
		case FieldHostname:
			recommendations = append(recommendations, "Update hostname to meet RFC 1123 standards")
		case FieldMAC:
			recommendations = append(recommendations, "Correct MAC address to valid 12-digit hex format")
		case FieldFQDN:
			recommendations = append(recommendations, "Ensure FQDN has valid domain structure")
		}
	}

	if len(recommendations) == 0 {
		return []string{"Review and correct field data"}
	}
	return recommendations
}

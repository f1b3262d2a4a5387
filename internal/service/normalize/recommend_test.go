/**
 * 测试:修复建议生成
 * @author: sun977
 * @date: 2026.02.13
 */
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neonorm/internal/model/inventory"
)

func TestGenerateRecommendations(t *testing.T) {
	issues := []inventory.Issue{
		{Field: FieldIP, Type: inventory.ReasonOctetOutOfRange, Value: "300.1.1.1"},
		{Field: FieldHostname, Type: inventory.ReasonInvalidFormat, Value: "-web"},
		{Field: FieldMAC, Type: inventory.ReasonInvalidFormat, Value: "aa:bb"},
		{Field: FieldFQDN, Type: inventory.ReasonMissingDomain, Value: "web01"},
	}

	got := GenerateRecommendations(issues)

	// 建议与问题一一对应且保持顺序
	assert.Equal(t, []string{
		"Correct IP octets to valid range (0-255)",
		"Update hostname to meet RFC 1123 standards",
		"Correct MAC address to valid 12-digit hex format",
		"Ensure FQDN has valid domain structure",
	}, got)
}

func TestGenerateRecommendationsIPVariants(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{inventory.ReasonOctetOutOfRange, "Correct IP octets to valid range (0-255)"},
		{inventory.ReasonWrongPartCount, "Verify IP address has exactly 4 octets"},
		{inventory.ReasonIPv6Detected, "Use IPv4 address or update schema to support IPv6"},
		{inventory.ReasonEmptyOctet, "Correct or validate IP address format"},
		{inventory.ReasonNonNumericOctet, "Correct or validate IP address format"},
		{inventory.ReasonMissing, "Correct or validate IP address format"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			got := GenerateRecommendations([]inventory.Issue{{Field: FieldIP, Type: tt.reason}})
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestGenerateRecommendationsFallback(t *testing.T) {
	// 未命中任何字段规则时给出兜底建议
	got := GenerateRecommendations([]inventory.Issue{{Field: "unknown_field", Type: "whatever"}})
	assert.Equal(t, []string{"Review and correct field data"}, got)

	got = GenerateRecommendations(nil)
	assert.Equal(t, []string{"Review and correct field data"}, got)
}

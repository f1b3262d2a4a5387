/**
 * 测试:IPv4校验与归一化
 * @author: sun977
 * @date: 2026.02.13
 */
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neonorm/internal/model/inventory"
)

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantValid     bool
		wantCanonical string
		wantVersion   string
		wantReason    string
	}{
		{"普通地址", "10.1.2.3", true, "10.1.2.3", "4", inventory.ReasonOK},
		{"前后空白", "  192.168.1.10  ", true, "192.168.1.10", "4", inventory.ReasonOK},
		{"前导零去除", "010.001.002.003", true, "10.1.2.3", "4", inventory.ReasonOK},
		{"空值", "", false, "", "", inventory.ReasonMissing},
		{"NA占位", "N/A", false, "N/A", "", inventory.ReasonMissing},
		{"na小写", "n/a", false, "n/a", "", inventory.ReasonMissing},
		{"段超范围", "300.1.1.1", false, "300.1.1.1", "", inventory.ReasonOctetOutOfRange},
		{"段数不足", "10.1.2", false, "10.1.2", "", inventory.ReasonWrongPartCount},
		{"段数过多", "10.1.2.3.4", false, "10.1.2.3.4", "", inventory.ReasonWrongPartCount},
		{"空段", "10..2.3", false, "10..2.3", "", inventory.ReasonEmptyOctet},
		{"负数段", "-1.2.3.4", false, "-1.2.3.4", "", inventory.ReasonNegativeOctet},
		{"非数字段", "10.a.2.3", false, "10.a.2.3", "", inventory.ReasonNonNumericOctet},
		{"IPv6回环", "::1", false, "::1", "6", inventory.ReasonIPv6Detected},
		{"IPv6带zone", "fe80::1%eth0", false, "fe80::1%eth0", "6", inventory.ReasonIPv6Detected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateIPv4(tt.input)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantCanonical, got.Canonical)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestValidateIPv4Idempotent(t *testing.T) {
	// 规范形式是不动点
	once := ValidateIPv4("010.001.002.003")
	again := ValidateIPv4(once.Canonical)
	assert.True(t, again.Valid)
	assert.Equal(t, once.Canonical, again.Canonical)
}

func TestClassifyIPv4Scope(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1.2.3", inventory.ScopePrivateRFC1918},
		{"172.16.0.1", inventory.ScopePrivateRFC1918},
		{"172.31.255.254", inventory.ScopePrivateRFC1918},
		{"172.32.0.1", inventory.ScopePublicOrOther},
		{"172.15.0.1", inventory.ScopePublicOrOther},
		{"192.168.50.1", inventory.ScopePrivateRFC1918},
		{"192.169.0.1", inventory.ScopePublicOrOther},
		{"169.254.0.5", inventory.ScopeLinkLocalAPIPA},
		{"127.0.0.1", inventory.ScopeLoopback},
		{"8.8.8.8", inventory.ScopePublicOrOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIPv4Scope(tt.input))
		})
	}
}

func TestDefaultSubnet(t *testing.T) {
	// 仅RFC1918推导/24子网
	assert.Equal(t, "10.1.2.0/24", DefaultSubnet("10.1.2.3"))
	assert.Equal(t, "192.168.50.0/24", DefaultSubnet("192.168.50.99"))
	assert.Equal(t, "172.16.10.0/24", DefaultSubnet("172.16.10.200"))

	// 非私有作用域不推导
	assert.Equal(t, "", DefaultSubnet("8.8.8.8"))
	assert.Equal(t, "", DefaultSubnet("127.0.0.1"))
	assert.Equal(t, "", DefaultSubnet("169.254.1.1"))
}

func TestReversePtr(t *testing.T) {
	assert.Equal(t, "3.2.1.10.in-addr.arpa", ReversePtr("10.1.2.3", true))
	assert.Equal(t, "1.0.0.127.in-addr.arpa", ReversePtr("127.0.0.1", true))

	// 无效地址不生成指针
	assert.Equal(t, "", ReversePtr("300.1.1.1", false))
	assert.Equal(t, "", ReversePtr("", false))
}

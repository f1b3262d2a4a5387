/**
 * 测试:记录归一化流水线
 * @author: sun977
 * @date: 2026.02.13
 */
package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonorm/internal/model/inventory"
	"neonorm/internal/service/classify"
)

// newTestPipeline 规则后端流水线,不依赖任何外部服务
func newTestPipeline() (*Pipeline, *classify.MemoryAuditLog) {
	auditLog := classify.NewMemoryAuditLog()
	owner := classify.NewFallbackOwnerParser(auditLog)
	device := classify.NewFallbackDeviceClassifier(auditLog)
	return NewPipeline(owner, device), auditLog
}

func TestProcessRecordClean(t *testing.T) {
	pipeline, _ := newTestPipeline()

	raw := &inventory.RawRecord{
		SourceRowID: "r1",
		Fields: map[string]string{
			"ip":          "10.1.2.3",
			"hostname":    "web-01",
			"fqdn":        "web-01.corp.example.com",
			"mac":         "AA:BB:CC:DD:EE:FF",
			"owner":       "priya (platform) priya@corp.example.com",
			"device_type": "server",
			"notes":       "primary web server",
			"site":        "bldg-1_campus",
		},
	}

	record, anomaly := pipeline.ProcessRecord(context.Background(), raw)

	// 零问题的记录绝不产生异常
	assert.Nil(t, anomaly)

	assert.Equal(t, "10.1.2.3", record.IP)
	assert.True(t, record.IPValid)
	assert.Equal(t, "4", record.IPVersion)
	assert.Equal(t, "10.1.2.0/24", record.SubnetCIDR)
	assert.Equal(t, "3.2.1.10.in-addr.arpa", record.ReversePtr)

	assert.Equal(t, "web-01", record.Hostname)
	assert.True(t, record.HostnameValid)
	assert.Equal(t, "web-01.corp.example.com", record.FQDN)
	assert.True(t, record.FQDNConsistent)

	assert.Equal(t, "aa:bb:cc:dd:ee:ff", record.MAC)
	assert.True(t, record.MACValid)

	assert.Equal(t, "priya", record.Owner)
	assert.Equal(t, "priya@corp.example.com", record.OwnerEmail)
	assert.Equal(t, "platform", record.OwnerTeam)

	// 显式已知类型直接采信
	assert.Equal(t, "server", record.DeviceType)
	assert.Equal(t, inventory.ConfidenceHigh, record.DeviceTypeConfidence)

	assert.Equal(t, "bldg-1_campus", record.Site)
	assert.Equal(t, "Building 1 Campus", record.SiteNormalized)
	assert.Equal(t, "r1", record.SourceRowID)

	// 步骤轨迹与字段处理顺序严格一致
	assert.Equal(t, []string{
		"ip_trim", "ip_parse", "ip_normalize",
		"hostname_trim", "hostname_validate",
		"fqdn_trim", "fqdn_validate",
		"mac_trim", "mac_normalize",
		"owner_parse_llm",
		"device_classify_llm_high",
		"site_normalize",
	}, record.NormalizationSteps)
}

func TestProcessRecordInvalidFields(t *testing.T) {
	pipeline, _ := newTestPipeline()

	raw := &inventory.RawRecord{
		SourceRowID: "r2",
		Fields: map[string]string{
			"ip":       "300.1.1.1",
			"hostname": "-web",
			"fqdn":     "web01",
			"mac":      "aa:bb:cc",
			"owner":    "",
			"site":     "",
		},
	}

	record, anomaly := pipeline.ProcessRecord(context.Background(), raw)

	// 字段失败不中断流水线
	assert.Equal(t, "300.1.1.1", record.IP)
	assert.False(t, record.IPValid)
	assert.Equal(t, "", record.SubnetCIDR)
	assert.Equal(t, "", record.ReversePtr)
	assert.False(t, record.HostnameValid)
	assert.False(t, record.FQDNConsistent)
	assert.False(t, record.MACValid)
	assert.Equal(t, "aa:bb:cc", record.MAC)

	assert.Contains(t, record.NormalizationSteps, "ip_invalid_octet_out_of_range")
	assert.Contains(t, record.NormalizationSteps, "hostname_invalid_invalid_format")
	assert.Contains(t, record.NormalizationSteps, "fqdn_invalid_missing_domain")
	assert.Contains(t, record.NormalizationSteps, "mac_invalid_invalid_format")

	require.NotNil(t, anomaly)
	assert.Equal(t, "r2", anomaly.SourceRowID)
	require.Len(t, anomaly.Issues, 4)
	assert.Equal(t, inventory.Issue{Field: "ip", Type: "octet_out_of_range", Value: "300.1.1.1"}, anomaly.Issues[0])
	assert.Equal(t, inventory.Issue{Field: "hostname", Type: "invalid_format", Value: "-web"}, anomaly.Issues[1])
	assert.Equal(t, inventory.Issue{Field: "fqdn", Type: "missing_domain", Value: "web01"}, anomaly.Issues[2])
	assert.Equal(t, inventory.Issue{Field: "mac", Type: "invalid_format", Value: "aa:bb:cc"}, anomaly.Issues[3])

	// 建议与问题一一对应
	assert.Equal(t, []string{
		"Correct IP octets to valid range (0-255)",
		"Update hostname to meet RFC 1123 standards",
		"Ensure FQDN has valid domain structure",
		"Correct MAC address to valid 12-digit hex format",
	}, anomaly.RecommendedActions)
}

func TestProcessRecordEmptyOptionalFields(t *testing.T) {
	pipeline, _ := newTestPipeline()

	// 空的hostname/fqdn/mac只标记无效,不产生异常
	raw := &inventory.RawRecord{
		SourceRowID: "r3",
		Fields:      map[string]string{"ip": "192.168.1.10"},
	}

	record, anomaly := pipeline.ProcessRecord(context.Background(), raw)

	assert.Nil(t, anomaly)
	assert.True(t, record.IPValid)
	assert.False(t, record.HostnameValid)
	assert.False(t, record.MACValid)
	assert.Equal(t, "unknown", record.DeviceType)
	assert.Equal(t, inventory.ConfidenceLow, record.DeviceTypeConfidence)

	// 空MAC不追加失败步骤
	assert.NotContains(t, record.NormalizationSteps, "mac_invalid_missing")
	assert.Contains(t, record.NormalizationSteps, "hostname_invalid_missing")
	assert.Contains(t, record.NormalizationSteps, "device_classify_llm_low")
}

func TestProcessRecordKeywordClassification(t *testing.T) {
	pipeline, _ := newTestPipeline()

	raw := &inventory.RawRecord{
		SourceRowID: "r4",
		Fields: map[string]string{
			"ip":       "10.0.0.7",
			"hostname": "rtr-edge-01",
		},
	}

	record, anomaly := pipeline.ProcessRecord(context.Background(), raw)

	assert.Nil(t, anomaly)
	assert.Equal(t, "router", record.DeviceType)
	assert.Equal(t, inventory.ConfidenceMedium, record.DeviceTypeConfidence)
	assert.Contains(t, record.NormalizationSteps, "device_classify_llm_medium")
}

func TestProcessRecordDeterministic(t *testing.T) {
	pipeline, _ := newTestPipeline()

	raw := &inventory.RawRecord{
		SourceRowID: "r5",
		Fields: map[string]string{
			"ip":       "172.16.5.20",
			"hostname": "db-01",
			"fqdn":     "db-01.corp.example.com",
			"mac":      "00-1A-2B-3C-4D-5E",
			"owner":    "sam sam@corp.example.com",
			"site":     "hq-west",
		},
	}

	first, firstAnomaly := pipeline.ProcessRecord(context.Background(), raw)
	second, secondAnomaly := pipeline.ProcessRecord(context.Background(), raw)

	assert.Equal(t, first, second)
	assert.Equal(t, firstAnomaly, secondAnomaly)
}

func TestProcessRecordAuditObservation(t *testing.T) {
	pipeline, auditLog := newTestPipeline()

	raw := &inventory.RawRecord{
		SourceRowID: "r6",
		Fields: map[string]string{
			"ip":       "10.0.0.1",
			"hostname": "cam-lobby",
			"owner":    "lee (netops)",
		},
	}

	_, _ = pipeline.ProcessRecord(context.Background(), raw)

	assert.Equal(t, 1, auditLog.CountByPurpose(classify.PurposeOwnerParsing))
	assert.Equal(t, 1, auditLog.CountByPurpose(classify.PurposeDeviceTypeClass))
}

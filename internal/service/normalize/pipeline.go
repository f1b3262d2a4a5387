/**
 * 服务:记录归一化流水线
 * @author: sun977
 * @date: 2026.02.13
 * @description: 单条记录的线性处理流水线 ip -> hostname -> fqdn -> mac -> owner -> device -> site
 * @func: Pipeline.ProcessRecord 逐字段校验归一化,收集步骤轨迹与字段问题
 * @note: 字段失败绝不中断流水线,每条输入恰好产出一条归一化记录和至多一条异常
 */
package normalize

import (
	"context"
	"strings"

	"neonorm/internal/model/inventory"
	"neonorm/internal/service/classify"
)

// 流水线读取的原始字段名
const (
	FieldIP         = "ip"
	FieldHostname   = "hostname"
	FieldFQDN       = "fqdn"
	FieldMAC        = "mac"
	FieldOwner      = "owner"
	FieldDeviceType = "device_type"
	FieldNotes      = "notes"
	FieldSite       = "site"
)

// Pipeline 记录归一化流水线
// 持有两个外部分类器能力,自身无跨记录状态,可安全并发调用
type Pipeline struct {
	owner  classify.OwnerParser
	device classify.DeviceClassifier
}

// NewPipeline 创建流水线实例
func NewPipeline(owner classify.OwnerParser, device classify.DeviceClassifier) *Pipeline {
	return &Pipeline{owner: owner, device: device}
}

// ProcessRecord 处理单条原始记录
// 返回恰好一条归一化记录;存在字段问题时返回一条异常,否则异常为 nil
func (p *Pipeline) ProcessRecord(ctx context.Context, raw *inventory.RawRecord) (*inventory.NormalizedRecord, *inventory.Anomaly) {
	rowID := raw.SourceRowID
	steps := make([]string, 0, 12)
	issues := make([]inventory.Issue, 0, 4)

	record := &inventory.NormalizedRecord{SourceRowID: rowID}

	// 1. IP校验 (纯规则)
	rawIP := raw.Get(FieldIP)
	ipOutcome := ValidateIPv4(rawIP)
	steps = append(steps, "ip_trim")

	record.IP = ipOutcome.Canonical
	record.IPValid = ipOutcome.Valid
	record.IPVersion = ipOutcome.Version
	if ipOutcome.Valid {
		steps = append(steps, "ip_parse", "ip_normalize")
		record.SubnetCIDR = DefaultSubnet(ipOutcome.Canonical)
		record.ReversePtr = ReversePtr(ipOutcome.Canonical, true)
	} else {
		steps = append(steps, "ip_invalid_"+ipOutcome.Reason)
		issues = append(issues, inventory.Issue{Field: FieldIP, Type: ipOutcome.Reason, Value: rawIP})
	}

	// 2. 主机名校验 (纯规则)
	rawHostname := raw.Get(FieldHostname)
	hostnameOutcome := ValidateHostname(rawHostname)
	steps = append(steps, "hostname_trim")

	record.Hostname = hostnameOutcome.Canonical
	record.HostnameValid = hostnameOutcome.Valid
	if hostnameOutcome.Valid {
		steps = append(steps, "hostname_validate")
	} else {
		steps = append(steps, "hostname_invalid_"+hostnameOutcome.Reason)
		// 空值只标记无效,不产生异常
		if hostnameOutcome.Canonical != "" {
			issues = append(issues, inventory.Issue{Field: FieldHostname, Type: hostnameOutcome.Reason, Value: rawHostname})
		}
	}

	// 3. FQDN校验与一致性检查 (纯规则)
	rawFQDN := raw.Get(FieldFQDN)
	fqdnOutcome := ValidateFQDN(rawFQDN)
	steps = append(steps, "fqdn_trim")

	record.FQDN = fqdnOutcome.Canonical
	if fqdnOutcome.Valid {
		steps = append(steps, "fqdn_validate")
		record.FQDNConsistent = CheckFQDNConsistency(record.Hostname, record.FQDN)
	} else {
		steps = append(steps, "fqdn_invalid_"+fqdnOutcome.Reason)
		record.FQDNConsistent = false
		if fqdnOutcome.Canonical != "" {
			issues = append(issues, inventory.Issue{Field: FieldFQDN, Type: fqdnOutcome.Reason, Value: rawFQDN})
		}
	}

	// 4. MAC校验 (纯规则)
	rawMAC := raw.Get(FieldMAC)
	macOutcome := NormalizeMAC(rawMAC)
	steps = append(steps, "mac_trim")

	record.MAC = macOutcome.Canonical
	record.MACValid = macOutcome.Valid
	if macOutcome.Valid {
		steps = append(steps, "mac_normalize")
	} else if macOutcome.Canonical != "" {
		// 空MAC不追加失败步骤也不产生异常
		steps = append(steps, "mac_invalid_"+macOutcome.Reason)
		issues = append(issues, inventory.Issue{Field: FieldMAC, Type: macOutcome.Reason, Value: rawMAC})
	}

	// 5. 责任人解析 (外部能力)
	// 步骤轨迹记录的是流水线阶段,与实际走模型还是规则无关
	ownerResult := p.owner.Parse(ctx, raw.Get(FieldOwner), rowID)
	steps = append(steps, "owner_parse_llm")
	record.Owner = ownerResult.Name
	record.OwnerEmail = ownerResult.Email
	record.OwnerTeam = ownerResult.Team

	// 6. 设备类型分类 (外部能力)
	deviceResult := p.device.Classify(ctx, classify.DeviceInput{
		Hostname:     record.Hostname,
		Notes:        raw.Get(FieldNotes),
		IP:           record.IP,
		ExplicitType: raw.Get(FieldDeviceType),
	}, rowID)
	steps = append(steps, "device_classify_llm_"+deviceResult.Confidence)
	record.DeviceType = deviceResult.DeviceType
	record.DeviceTypeConfidence = deviceResult.Confidence

	// 7. 站点归一化 (纯规则,无校验概念)
	rawSite := raw.Get(FieldSite)
	record.Site = strings.TrimSpace(rawSite)
	record.SiteNormalized = NormalizeSite(rawSite)
	steps = append(steps, "site_normalize")

	record.NormalizationSteps = steps

	// 有字段问题才构造异常,零问题的记录绝不产生异常对象
	if len(issues) == 0 {
		return record, nil
	}
	return record, &inventory.Anomaly{
		SourceRowID:        rowID,
		Issues:             issues,
		RecommendedActions: GenerateRecommendations(issues),
	}
}

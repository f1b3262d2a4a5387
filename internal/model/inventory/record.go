/**
 * 模型:资产清单记录
 * @author: sun977
 * @date: 2026.02.10
 * @description: 资产清单归一化的输入/输出数据模型
 * @func: RawRecord 原始记录 / FieldOutcome 字段校验结果 / NormalizedRecord 归一化记录
 */
package inventory

// 字段校验失败原因码 (固定枚举,不允许自造)
const (
	ReasonOK              = "ok"                  // 校验通过
	ReasonMissing         = "missing"             // 字段缺失或 N/A
	ReasonWrongPartCount  = "wrong_part_count"    // IPv4 点分段数不是4
	ReasonEmptyOctet      = "empty_octet"         // IPv4 存在空段
	ReasonNegativeOctet   = "negative_octet"      // IPv4 存在负数段
	ReasonNonNumericOctet = "non_numeric_octet"   // IPv4 存在非数字段
	ReasonOctetOutOfRange = "octet_out_of_range"  // IPv4 段超出 0-255
	ReasonIPv6Detected    = "ipv6_detected"       // 检测到 IPv6 (仅识别不归一化)
	ReasonTooLong         = "too_long"            // 主机名超过253字符
	ReasonInvalidFormat   = "invalid_format"      // 格式不符合规则
	ReasonMissingDomain   = "missing_domain"      // FQDN 缺少域名部分
	ReasonInvalidLabelLen = "invalid_label_length" // FQDN 标签长度非法
	ReasonInvalidLabelFmt = "invalid_label_format" // FQDN 标签格式非法
)

// IP 地址作用域分类
const (
	ScopePrivateRFC1918 = "private_rfc1918" // 私有地址 10/8 172.16/12 192.168/16
	ScopeLinkLocalAPIPA = "link_local_apipa" // 链路本地 169.254/16
	ScopeLoopback       = "loopback"         // 回环 127/8
	ScopePublicOrOther  = "public_or_other"  // 公网或其他
)

// 设备类型置信度
const (
	ConfidenceHigh   = "high"   // 显式给出的已知类型
	ConfidenceMedium = "medium" // 模型高分或关键词命中
	ConfidenceLow    = "low"    // 模型低分或无法判断
)

// RawRecord 原始资产记录
// 从数据源表读入的一行,字段保持原始文本不做任何改写
type RawRecord struct {
	SourceRowID string            `json:"source_row_id"` // 来源行ID
	Fields      map[string]string `json:"fields"`        // 字段名 -> 原始文本
}

// Get 获取原始字段值,不存在时返回空字符串
func (r *RawRecord) Get(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// FieldOutcome 单字段校验结果
// 不变式: Valid == true 当且仅当 Reason == "ok"
type FieldOutcome struct {
	Valid     bool   `json:"valid"`           // 校验是否通过
	Canonical string `json:"canonical_value"` // 规范化后的值(失败时为原值)
	Reason    string `json:"reason_code"`     // 失败原因码,成功为 "ok"
}

// NormalizedRecord 归一化后的资产记录
// 由 Pipeline 独占构造,构造完成后不再修改
type NormalizedRecord struct {
	IP                   string   `json:"ip"`                     // 规范化IP,无效时保留原值
	IPValid              bool     `json:"ip_valid"`               // IP是否有效
	IPVersion            string   `json:"ip_version"`             // "4" / "6" / ""
	SubnetCIDR           string   `json:"subnet_cidr"`            // 默认子网(仅RFC1918)
	Hostname             string   `json:"hostname"`               // 主机名(trim后)
	HostnameValid        bool     `json:"hostname_valid"`         // 主机名是否有效
	FQDN                 string   `json:"fqdn"`                   // FQDN(trim后)
	FQDNConsistent       bool     `json:"fqdn_consistent"`        // FQDN是否以主机名开头
	ReversePtr           string   `json:"reverse_ptr"`            // 反向解析指针
	MAC                  string   `json:"mac"`                    // 规范化MAC,无效时保留原值
	MACValid             bool     `json:"mac_valid"`              // MAC是否有效
	Owner                string   `json:"owner"`                  // 责任人姓名
	OwnerEmail           string   `json:"owner_email"`            // 责任人邮箱
	OwnerTeam            string   `json:"owner_team"`             // 责任团队
	DeviceType           string   `json:"device_type"`            // 设备类型
	DeviceTypeConfidence string   `json:"device_type_confidence"` // 分类置信度 high/medium/low
	Site                 string   `json:"site"`                   // 原始站点(trim后)
	SiteNormalized       string   `json:"site_normalized"`        // 规范化站点
	SourceRowID          string   `json:"source_row_id"`          // 来源行ID
	NormalizationSteps   []string `json:"normalization_steps"`    // 按顺序记录的处理步骤
}

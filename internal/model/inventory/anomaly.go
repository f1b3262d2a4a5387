/**
 * 模型:异常记录
 * @author: sun977
 * @date: 2026.02.10
 * @description: 字段级校验失败聚合出的异常记录
 * @func: Issue 单字段问题 / Anomaly 行级异常
 */
package inventory

// Issue 单字段校验问题
type Issue struct {
	Field string `json:"field"` // 字段名 ip/hostname/fqdn/mac
	Type  string `json:"type"`  // 失败原因码
	Value string `json:"value"` // 原始值(保留原样)
}

// Anomaly 行级异常
// 仅当一条记录存在至少一个字段问题时构造,问题与建议保持输入顺序
type Anomaly struct {
	SourceRowID        string   `json:"source_row_id"`       // 来源行ID
	Issues             []Issue  `json:"issues"`              // 字段问题列表(有序)
	RecommendedActions []string `json:"recommended_actions"` // 修复建议,与 Issues 一一对应
}

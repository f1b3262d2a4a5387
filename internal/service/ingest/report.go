/**
 * 服务:异常与审计报告输出
 * @author: sun977
 * @date: 2026.02.14
 * @description: 异常记录JSON输出与分类器调用审计的markdown报告
 * @func: WriteAnomalies 异常JSON / WriteInvocationReport 按调用目的分组的审计报告
 */
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"neonorm/internal/model/inventory"
	"neonorm/internal/pkg/utils"
	"neonorm/internal/service/classify"
)

// WriteAnomalies 将异常记录序列化为缩进JSON
// 键名与顺序稳定: source_row_id / issues / recommended_actions
func WriteAnomalies(w io.Writer, anomalies []*inventory.Anomaly) error {
	if anomalies == nil {
		anomalies = []*inventory.Anomaly{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(anomalies); err != nil {
		return fmt.Errorf("failed to encode anomalies: %w", err)
	}
	return nil
}

// WriteAnomaliesFile 将异常记录写出到JSON文件
func WriteAnomaliesFile(filePath string, anomalies []*inventory.Anomaly) error {
	var sb strings.Builder
	if err := WriteAnomalies(&sb, anomalies); err != nil {
		return err
	}
	return utils.WriteFile(filePath, []byte(sb.String()), 0644)
}

// WriteInvocationReport 输出分类器调用审计报告
// 按调用目的分组,每次调用列出行ID与解析结果,末尾给出总调用数
func WriteInvocationReport(w io.Writer, calls []classify.Invocation) error {
	var sb strings.Builder
	sb.WriteString("# Classifier Invocation Log\n\n")
	sb.WriteString("Every owner-parsing and device-classification call made during normalization.\n")
	sb.WriteString("Calls marked `fallback` were answered by the deterministic rule backend.\n\n")

	deviceCalls := filterByPurpose(calls, classify.PurposeDeviceTypeClass)
	ownerCalls := filterByPurpose(calls, classify.PurposeOwnerParsing)

	if len(deviceCalls) > 0 {
		sb.WriteString("## Device Type Classification\n\n")
		for _, call := range deviceCalls {
			sb.WriteString(fmt.Sprintf("**Row %s**%s\n", call.SourceRowID, callMarkers(call)))
			sb.WriteString(fmt.Sprintf("- Classification: %v\n", call.Parsed["classification"]))
			sb.WriteString(fmt.Sprintf("- Confidence: %v\n", call.Parsed["confidence"]))
			if reasoning, ok := call.Parsed["reasoning"]; ok {
				sb.WriteString(fmt.Sprintf("- Reasoning: %v\n", reasoning))
			}
			sb.WriteString("\n")
		}
	}

	if len(ownerCalls) > 0 {
		sb.WriteString("## Owner Parsing\n\n")
		for _, call := range ownerCalls {
			sb.WriteString(fmt.Sprintf("**Row %s**%s\n", call.SourceRowID, callMarkers(call)))
			sb.WriteString(fmt.Sprintf("- Name: %v\n", call.Parsed["parsed_name"]))
			sb.WriteString(fmt.Sprintf("- Email: %v\n", call.Parsed["parsed_email"]))
			sb.WriteString(fmt.Sprintf("- Team: %v\n", call.Parsed["parsed_team"]))
			sb.WriteString("\n")
		}
	}

	if len(calls) == 0 {
		sb.WriteString("*No classifier calls were made.*\n")
	} else {
		sb.WriteString(fmt.Sprintf("**Total Calls:** %d\n", len(calls)))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write invocation report: %w", err)
	}
	return nil
}

// WriteInvocationReportFile 将审计报告写出到markdown文件
func WriteInvocationReportFile(filePath string, calls []classify.Invocation) error {
	var sb strings.Builder
	if err := WriteInvocationReport(&sb, calls); err != nil {
		return err
	}
	return utils.WriteFile(filePath, []byte(sb.String()), 0644)
}

// filterByPurpose 按调用目的过滤,保持原始顺序
func filterByPurpose(calls []classify.Invocation, purpose string) []classify.Invocation {
	result := make([]classify.Invocation, 0, len(calls))
	for _, call := range calls {
		if call.Purpose == purpose {
			result = append(result, call)
		}
	}
	return result
}

// callMarkers 调用的状态标记
func callMarkers(call classify.Invocation) string {
	markers := ""
	if call.Cached {
		markers += " `cached`"
	}
	if call.UsedFallback {
		markers += " `fallback`"
	}
	return markers
}

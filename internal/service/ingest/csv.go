/**
 * 服务:CSV数据接入
 * @author: sun977
 * @date: 2026.02.14
 * @description: 资产清单CSV的读入与归一化结果的写出
 * @func: ReadRecords 按表头读入原始记录 / WriteRecords 按固定列序写出归一化记录
 * @note: 输出列序固定不可调整,布尔值序列化为字符串 "true"/"false"
 */
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"neonorm/internal/model/inventory"
)

// outputColumns 归一化结果的固定输出列序
var outputColumns = []string{
	"ip", "ip_valid", "ip_version", "subnet_cidr",
	"hostname", "hostname_valid", "fqdn", "fqdn_consistent", "reverse_ptr",
	"mac", "mac_valid",
	"owner", "owner_email", "owner_team",
	"device_type", "device_type_confidence",
	"site", "site_normalized",
	"source_row_id", "normalization_steps",
}

// ReadRecords 从CSV读入原始资产记录
// 第一行为表头,每行按表头构造字段映射;source_row_id 列缺失时该值为空
func ReadRecords(r io.Reader) ([]*inventory.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 行内列数允许不齐

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]*inventory.RawRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			} else {
				fields[name] = ""
			}
		}
		records = append(records, &inventory.RawRecord{
			SourceRowID: fields["source_row_id"],
			Fields:      fields,
		})
	}

	return records, nil
}

// ReadRecordsFile 从CSV文件读入原始资产记录
func ReadRecordsFile(filePath string) ([]*inventory.RawRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input csv: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecords 将归一化记录按固定列序写出为CSV
// 布尔字段写 "true"/"false",步骤轨迹用 "|" 连接
func WriteRecords(w io.Writer, records []*inventory.NormalizedRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(outputColumns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.IP,
			formatBool(record.IPValid),
			record.IPVersion,
			record.SubnetCIDR,
			record.Hostname,
			formatBool(record.HostnameValid),
			record.FQDN,
			formatBool(record.FQDNConsistent),
			record.ReversePtr,
			record.MAC,
			formatBool(record.MACValid),
			record.Owner,
			record.OwnerEmail,
			record.OwnerTeam,
			record.DeviceType,
			record.DeviceTypeConfidence,
			record.Site,
			record.SiteNormalized,
			record.SourceRowID,
			strings.Join(record.NormalizationSteps, "|"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return nil
}

// WriteRecordsFile 将归一化记录写出到CSV文件,必要时创建输出目录
func WriteRecordsFile(filePath string, records []*inventory.NormalizedRecord) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output csv: %w", err)
	}
	defer f.Close()
	return WriteRecords(f, records)
}

// formatBool 布尔值序列化为固定字面量
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

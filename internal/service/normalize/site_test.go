/**
 * 测试:站点名称归一化
 * @author: sun977
 * @date: 2026.02.13
 */
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"分隔符加缩写", "bldg-1_campus", "Building 1 Campus"},
		{"building全称", "building 2", "Building 2"},
		{"缩写大小写不敏感", "BLDG 3", "Building 3"},
		{"总部缩写", "hq-west", "HQ west"},
		{"实验室", "lab_3", "Lab 3"},
		{"机房缩写", "main dc", "main DC"},
		{"字母数字补空格", "Building1", "Building 1"},
		{"多余空白压缩", "  bldg   1  ", "Building 1"},
		{"连续分隔符", "bldg--1__campus", "Building 1 Campus"},
		{"无规则命中原样", "Headquarters West", "Headquarters West"},
		{"空值", "", ""},
		{"仅空白", "   ", ""},
		{"NA占位", "N/A", ""},
		{"na小写", "n/a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSite(tt.input))
		})
	}
}

func TestNormalizeSiteIdempotent(t *testing.T) {
	// 归一化结果再次归一化保持不变
	inputs := []string{"bldg-1_campus", "hq-west", "main dc", "Building1", "Headquarters West"}
	for _, in := range inputs {
		once := NormalizeSite(in)
		assert.Equal(t, once, NormalizeSite(once), "input %q", in)
	}
}

/**
 * 服务:站点名称归一化
 * @author: sun977
 * @date: 2026.02.11
 * @description: 站点自由文本的确定性规范化,规则有固定的应用顺序
 * @func: NormalizeSite
 */
package normalize

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// 站点归一化规则,按声明顺序应用
var (
	siteSeparatorRe  = regexp2.MustCompile(`[-_]+`, regexp2.None)
	siteSpacesRe     = regexp2.MustCompile(`\s+`, regexp2.None)
	siteLetterDigitRe = regexp2.MustCompile(`([a-zA-Z])(\d)`, regexp2.None)

	// 常见缩写的全词替换,大小写不敏感
	siteWordRules = []struct {
		re   *regexp2.Regexp
		repl string
	}{
		{regexp2.MustCompile(`\b(bldg|building)\b`, regexp2.IgnoreCase), "Building"},
		{regexp2.MustCompile(`\b(campus)\b`, regexp2.IgnoreCase), "Campus"},
		{regexp2.MustCompile(`\b(hq)\b`, regexp2.IgnoreCase), "HQ"},
		{regexp2.MustCompile(`\b(lab)\b`, regexp2.IgnoreCase), "Lab"},
		{regexp2.MustCompile(`\b(dc)\b`, regexp2.IgnoreCase), "DC"},
	}
)

// NormalizeSite 归一化站点名称
// 无校验概念,总是成功,可能返回空字符串
// 顺序: 分隔符转空格 -> 压缩空白 -> 缩写全词替换 -> 字母数字间补空格 -> 压缩并trim
func NormalizeSite(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "N/A") {
		return ""
	}

	s = mustReplace(siteSeparatorRe, s, " ")
	s = mustReplace(siteSpacesRe, s, " ")
	for _, rule := range siteWordRules {
		s = mustReplace(rule.re, s, rule.repl)
	}
	s = mustReplace(siteLetterDigitRe, s, "$1 $2")
	s = mustReplace(siteSpacesRe, s, " ")

	return strings.TrimSpace(s)
}

// mustReplace 全量替换,规则均为编译期常量,运行期不会出错
func mustReplace(re *regexp2.Regexp, input, repl string) string {
	out, err := re.Replace(input, repl, -1, -1)
	if err != nil {
		return input
	}
	return out
}

// 文件处理工具包
// 提供文件读取、写入、判断等操作
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileLines 从文件读取内容返回列表
// filePath: 文件路径
// 返回: 内容列表, 错误信息
func ReadFileLines(filePath string) ([]string, error) {
	// 检查文件是否存在
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("文件不存在: %s", filePath)
	}

	// 读取文件内容
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取文件内容失败: %v", err)
	}

	// 按行分割内容，处理不同操作系统的换行符
	lines := strings.Split(string(content), "\n")

	// 移除可能的空行和包含仅换行符的内容
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		// 移除行末的回车符（Windows换行符 \r\n）
		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") { // 过滤注释行(#开头)
			result = append(result, line)
		}
	}

	return result, nil
}

// WriteFile 写入文件内容，必要时创建父目录
// filePath: 文件路径
// content: 文件内容
// perm: 文件权限
func WriteFile(filePath string, content []byte, perm os.FileMode) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建目录失败: %v", err)
		}
	}
	return os.WriteFile(filePath, content, perm)
}

// ReadFile 读取文件内容
// filePath: 文件路径
// 返回: 文件内容, 错误信息
func ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

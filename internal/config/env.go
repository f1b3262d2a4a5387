package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvManager 环境变量管理器
type EnvManager struct {
	prefix string // 环境变量前缀
}

// NewEnvManager 创建环境变量管理器
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "NEONORM"
	}
	return &EnvManager{
		prefix: prefix,
	}
}

// GetString 获取字符串类型环境变量
func (em *EnvManager) GetString(key, defaultValue string) string {
	envKey := em.buildEnvKey(key)
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetInt 获取整数类型环境变量
func (em *EnvManager) GetInt(key string, defaultValue int) int {
	envKey := em.buildEnvKey(key)
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetBool 获取布尔类型环境变量
func (em *EnvManager) GetBool(key string, defaultValue bool) bool {
	envKey := em.buildEnvKey(key)
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// GetDuration 获取时间间隔类型环境变量
func (em *EnvManager) GetDuration(key string, defaultValue time.Duration) time.Duration {
	envKey := em.buildEnvKey(key)
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// Exists 检查环境变量是否存在
func (em *EnvManager) Exists(key string) bool {
	envKey := em.buildEnvKey(key)
	_, exists := os.LookupEnv(envKey)
	return exists
}

// buildEnvKey 构建完整的环境变量键名
func (em *EnvManager) buildEnvKey(key string) string {
	key = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if strings.HasPrefix(key, em.prefix+"_") {
		return key
	}
	return em.prefix + "_" + key
}

package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构体 [这里的字段和配置文件中一级字段保持一致，否则会没有值]
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`         // 服务器配置
	Log        LogConfig        `yaml:"log" mapstructure:"log"`               // 日志配置
	Security   SecurityConfig   `yaml:"security" mapstructure:"security"`     // 安全配置
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"` // 分类器配置
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`           // 缓存配置
	App        AppConfig        `yaml:"app" mapstructure:"app"`               // 应用配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`                         // 服务器主机地址
	Port           int           `yaml:"port" mapstructure:"port"`                         // 服务器端口
	Mode           string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式: debug, release, test
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大请求头字节数
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式: json, text
	Output     string `yaml:"output" mapstructure:"output"`           // 输出方式: stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 保留的日志文件数量
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩日志文件
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
	StackTrace bool   `yaml:"stack_trace" mapstructure:"stack_trace"` // 是否显示堆栈跟踪
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"` // 限流配置
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled" mapstructure:"enabled"`                         // 是否启用限流
	RequestsPerSecond int      `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 每秒请求数限制
	BurstSize         int      `yaml:"burst_size" mapstructure:"burst_size"`                   // 突发请求数
	StatusCode        int      `yaml:"status_code" mapstructure:"status_code"`                 // 限流时返回的状态码
	Message           string   `yaml:"message" mapstructure:"message"`                         // 限流时返回的消息
	SkipPaths         []string `yaml:"skip_paths" mapstructure:"skip_paths"`                   // 跳过限流的路径
}

// ClassifierConfig 分类器配置(责任人解析和设备类型识别)
type ClassifierConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`           // 是否启用模型后端,关闭时使用规则回退
	Endpoint    string        `yaml:"endpoint" mapstructure:"endpoint"`         // 模型服务地址
	Model       string        `yaml:"model" mapstructure:"model"`               // 模型名称
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`           // 单次请求超时时间
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"` // 最大尝试次数(含首次)
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"` // Redis配置
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`               // 是否启用响应缓存
	Host         string        `yaml:"host" mapstructure:"host"`                     // Redis主机
	Port         int           `yaml:"port" mapstructure:"port"`                     // Redis端口
	Password     string        `yaml:"password" mapstructure:"password"`             // Redis密码
	Database     int           `yaml:"database" mapstructure:"database"`             // Redis数据库索引
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`           // 连接池大小
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"` // 最小空闲连接数
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`     // 连接超时
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`     // 读取超时
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`   // 写入超时
	TTL          time.Duration `yaml:"ttl" mapstructure:"ttl"`                       // 缓存条目过期时间
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string          `yaml:"name" mapstructure:"name"`               // 应用名称
	Version     string          `yaml:"version" mapstructure:"version"`         // 应用版本
	Environment string          `yaml:"environment" mapstructure:"environment"` // 运行环境
	Debug       bool            `yaml:"debug" mapstructure:"debug"`             // 是否调试模式
	Timezone    string          `yaml:"timezone" mapstructure:"timezone"`       // 时区
	Normalize   NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`     // 规范化流程配置
}

// NormalizeConfig 规范化流程配置
type NormalizeConfig struct {
	WorkerNum     int    `yaml:"worker_num" mapstructure:"worker_num"`         // 批处理工作协程数
	MaxBatchSize  int    `yaml:"max_batch_size" mapstructure:"max_batch_size"` // 单次请求最大记录数
	OutputDir     string `yaml:"output_dir" mapstructure:"output_dir"`         // 批处理输出目录
	ReportEnabled bool   `yaml:"report_enabled" mapstructure:"report_enabled"` // 是否生成调用审计报告
}

// GetAddress 获取服务器完整地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetRedisAddress 获取Redis地址
func (r *RedisConfig) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// IsDevelopment 判断是否为开发环境
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction 判断是否为生产环境
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// IsTest 判断是否为测试环境
func (a *AppConfig) IsTest() bool {
	return a.Environment == "test"
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testConfigContent = `
server:
  host: "localhost"
  port: 8080
  mode: "test"
  read_timeout: 30s
  write_timeout: 30s
  idle_timeout: 60s
  max_header_bytes: 1048576

log:
  level: "info"
  format: "json"
  output: "stdout"
  file_path: "logs/app.log"
  max_size: 100
  max_backups: 5
  max_age: 30
  compress: true
  caller: true
  stack_trace: true

security:
  rate_limit:
    enabled: true
    requests_per_second: 100
    burst_size: 200
    status_code: 429
    message: "too many requests"

classifier:
  enabled: false
  endpoint: "http://localhost:11434"
  model: "llama3"
  timeout: 30s
  max_attempts: 2

cache:
  redis:
    enabled: false
    host: "localhost"
    port: 6379
    password: ""
    database: 0
    pool_size: 10
    min_idle_conns: 5
    dial_timeout: 5s
    read_timeout: 3s
    write_timeout: 3s
    ttl: 24h

app:
  name: "NeoNorm Test"
  version: "1.0.0"
  environment: "test"
  debug: true
  timezone: "Asia/Shanghai"
  normalize:
    worker_num: 5
    max_batch_size: 10000
    output_dir: "output"
    report_enabled: true
`

// TestLoadConfig 测试配置加载功能
func TestLoadConfig(t *testing.T) {
	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(testConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// 测试加载配置
	config, err := LoadConfig(tempDir, "test")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证配置值
	if config.Server.Host != "localhost" {
		t.Errorf("Expected server host 'localhost', got '%s'", config.Server.Host)
	}

	if config.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", config.Server.Port)
	}

	if config.Classifier.Model != "llama3" {
		t.Errorf("Expected classifier model 'llama3', got '%s'", config.Classifier.Model)
	}

	if config.Cache.Redis.TTL != 24*time.Hour {
		t.Errorf("Expected redis ttl 24h, got %v", config.Cache.Redis.TTL)
	}

	if config.App.Environment != "test" {
		t.Errorf("Expected environment 'test', got '%s'", config.App.Environment)
	}

	if config.App.Normalize.WorkerNum != 5 {
		t.Errorf("Expected worker num 5, got %d", config.App.Normalize.WorkerNum)
	}
}

// TestLoadConfigWithEnvVars 测试环境变量覆盖配置
func TestLoadConfigWithEnvVars(t *testing.T) {
	// 设置环境变量
	os.Setenv("NEONORM_SERVER_PORT", "9090")
	os.Setenv("NEONORM_CLASSIFIER_ENDPOINT", "http://ollama.internal:11434")
	defer func() {
		os.Unsetenv("NEONORM_SERVER_PORT")
		os.Unsetenv("NEONORM_CLASSIFIER_ENDPOINT")
	}()

	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(testConfigContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// 测试加载配置
	config, err := LoadConfig(tempDir, "test")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证环境变量覆盖了配置文件的值
	if config.Server.Port != 9090 {
		t.Errorf("Expected server port 9090 (from env), got %d", config.Server.Port)
	}

	if config.Classifier.Endpoint != "http://ollama.internal:11434" {
		t.Errorf("Expected classifier endpoint from env, got '%s'", config.Classifier.Endpoint)
	}
}

// TestConfigDefaults 测试默认值填充
func TestConfigDefaults(t *testing.T) {
	config := &Config{}
	applyDefaults(config)

	if config.Classifier.MaxAttempts != 2 {
		t.Errorf("Expected default max attempts 2, got %d", config.Classifier.MaxAttempts)
	}

	if config.Cache.Redis.TTL != 24*time.Hour {
		t.Errorf("Expected default redis ttl 24h, got %v", config.Cache.Redis.TTL)
	}

	if config.App.Normalize.WorkerNum != 5 {
		t.Errorf("Expected default worker num 5, got %d", config.App.Normalize.WorkerNum)
	}

	if config.App.Normalize.OutputDir != "output" {
		t.Errorf("Expected default output dir 'output', got '%s'", config.App.Normalize.OutputDir)
	}
}

// TestConfigValidation 测试配置验证
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
					Mode: "debug",
				},
				Log: LogConfig{
					Level:  "info",
					Format: "json",
					Output: "stdout",
				},
			},
			expectError: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{
					Port: -1,
				},
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "classifier enabled without endpoint",
			config: &Config{
				Server: ServerConfig{
					Port: 8080,
					Mode: "debug",
				},
				Classifier: ClassifierConfig{
					Enabled: true,
				},
				Log: LogConfig{
					Level:  "info",
					Format: "json",
					Output: "stdout",
				},
			},
			expectError: true,
			errorMsg:    "classifier endpoint is required",
		},
		{
			name: "file output without path",
			config: &Config{
				Server: ServerConfig{
					Port: 8080,
					Mode: "release",
				},
				Log: LogConfig{
					Level:  "info",
					Format: "json",
					Output: "file",
				},
			},
			expectError: true,
			errorMsg:    "log file path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

// TestEnvManager 测试环境变量管理器
func TestEnvManager(t *testing.T) {
	em := NewEnvManager("TESTNORM")

	os.Setenv("TESTNORM_STRING_VAL", "test_value")
	os.Setenv("TESTNORM_INT_VAL", "42")
	os.Setenv("TESTNORM_BOOL_VAL", "true")
	os.Setenv("TESTNORM_DURATION_VAL", "5m")
	defer func() {
		os.Unsetenv("TESTNORM_STRING_VAL")
		os.Unsetenv("TESTNORM_INT_VAL")
		os.Unsetenv("TESTNORM_BOOL_VAL")
		os.Unsetenv("TESTNORM_DURATION_VAL")
	}()

	if val := em.GetString("STRING_VAL", "default"); val != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", val)
	}

	if val := em.GetInt("INT_VAL", 0); val != 42 {
		t.Errorf("Expected 42, got %d", val)
	}

	if val := em.GetBool("BOOL_VAL", false); val != true {
		t.Errorf("Expected true, got %t", val)
	}

	if val := em.GetDuration("DURATION_VAL", 0); val != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", val)
	}

	// 测试不存在的环境变量
	if val := em.GetString("NON_EXISTENT", "default"); val != "default" {
		t.Errorf("Expected 'default', got '%s'", val)
	}

	if !em.Exists("STRING_VAL") {
		t.Error("Expected environment variable to exist")
	}

	if em.Exists("NON_EXISTENT") {
		t.Error("Expected environment variable to not exist")
	}
}

// TestConfigHelperMethods 测试配置辅助方法
func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		App: AppConfig{
			Environment: "development",
		},
		Cache: CacheConfig{
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
	}

	// 测试服务器地址
	expectedAddr := "localhost:8080"
	if addr := config.Server.GetAddress(); addr != expectedAddr {
		t.Errorf("Expected address '%s', got '%s'", expectedAddr, addr)
	}

	// 测试环境判断
	if !config.App.IsDevelopment() {
		t.Error("Expected to be development environment")
	}

	if config.App.IsProduction() {
		t.Error("Expected not to be production environment")
	}

	// 测试Redis地址
	expectedRedisAddr := "localhost:6379"
	if addr := config.Cache.Redis.GetRedisAddress(); addr != expectedRedisAddr {
		t.Errorf("Expected Redis address '%s', got '%s'", expectedRedisAddr, addr)
	}
}

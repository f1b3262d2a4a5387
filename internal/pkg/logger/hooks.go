package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"neonorm/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileHook 是一个自定义Hook,用于将不同类型的日志写入不同的文件
type FileHook struct {
	logConfig *config.LogConfig
	writers   map[string]io.Writer
	formatter logrus.Formatter
	mutex     sync.Mutex
}

// NewFileHook 创建一个新的FileHook实例
func NewFileHook(logConfig *config.LogConfig) *FileHook {
	hook := &FileHook{
		logConfig: logConfig,
		writers:   make(map[string]io.Writer),
		formatter: &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		},
	}

	hook.initDefaultWriter()

	return hook
}

// initDefaultWriter 初始化默认writer(主日志文件)
func (hook *FileHook) initDefaultWriter() {
	if hook.logConfig.Output == "file" && hook.logConfig.FilePath != "" {
		_ = os.MkdirAll(filepath.Dir(hook.logConfig.FilePath), 0755)
		hook.writers["default"] = &lumberjack.Logger{
			Filename:   hook.logConfig.FilePath,
			MaxSize:    hook.logConfig.MaxSize,
			MaxBackups: hook.logConfig.MaxBackups,
			MaxAge:     hook.logConfig.MaxAge,
			Compress:   hook.logConfig.Compress,
		}
	}
}

// Levels 返回此Hook关心的所有日志级别
func (hook *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 在日志触发时执行
func (hook *FileHook) Fire(entry *logrus.Entry) error {
	// 获取日志类型,默认为default
	logType := "default"
	if lt, ok := entry.Data["type"]; ok {
		if t, ok := lt.(LogType); ok {
			logType = string(t)
		} else if t, ok := lt.(string); ok {
			logType = t
		}
	}

	writer := hook.getWriter(logType)
	if writer == nil {
		writer = hook.getWriter("default")
		if writer == nil {
			return nil
		}
	}

	formatted, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	hook.mutex.Lock()
	defer hook.mutex.Unlock()
	_, err = writer.Write(formatted)
	return err
}

// getWriter 获取指定类型的writer,如果不存在则创建
func (hook *FileHook) getWriter(logType string) io.Writer {
	hook.mutex.Lock()
	defer hook.mutex.Unlock()

	if writer, exists := hook.writers[logType]; exists {
		return writer
	}

	// 非文件输出模式不创建分类日志文件
	if hook.logConfig.Output != "file" || hook.logConfig.FilePath == "" {
		return nil
	}

	var filename string
	logDir := filepath.Dir(hook.logConfig.FilePath)

	switch logType {
	case "access":
		filename = filepath.Join(logDir, "access.log")
	case "business":
		filename = filepath.Join(logDir, "business.log")
	case "error":
		filename = filepath.Join(logDir, "error.log")
	case "system":
		filename = filepath.Join(logDir, "system.log")
	default:
		return hook.writers["default"]
	}

	_ = os.MkdirAll(filepath.Dir(filename), 0755)

	writer := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    hook.logConfig.MaxSize,
		MaxBackups: hook.logConfig.MaxBackups,
		MaxAge:     hook.logConfig.MaxAge,
		Compress:   hook.logConfig.Compress,
	}

	hook.writers[logType] = writer

	return writer
}

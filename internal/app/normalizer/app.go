/**
 * 应用:normalizer 应用装配
 * @author: sun977
 * @date: 2026.02.14
 * @description: 加载配置、初始化日志与依赖、装配路由
 * @func: NewApp 创建应用实例 / Start 启动 / Stop 停止
 */
package normalizer

import (
	"context"
	"fmt"

	"neonorm/internal/app/normalizer/router"
	"neonorm/internal/config"
	"neonorm/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App 应用程序结构体
type App struct {
	config      *config.Config
	router      *router.Router
	redisClient *redis.Client
	configPath  string
	env         string
}

// NewApp 创建新的应用程序实例
// configPath 为空时使用默认路径 configs/
func NewApp(configPath, env string) (*App, error) {
	// 加载配置
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 初始化Redis客户端(分类器响应缓存,可选)
	var redisClient *redis.Client
	if cfg.Cache.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Cache.Redis.GetRedisAddress(),
			Password:     cfg.Cache.Redis.Password,
			DB:           cfg.Cache.Redis.Database,
			PoolSize:     cfg.Cache.Redis.PoolSize,
			MinIdleConns: cfg.Cache.Redis.MinIdleConns,
			DialTimeout:  cfg.Cache.Redis.DialTimeout,
			ReadTimeout:  cfg.Cache.Redis.ReadTimeout,
			WriteTimeout: cfg.Cache.Redis.WriteTimeout,
		})
	}

	// 初始化路由器并装配路由
	r := router.NewRouter(redisClient, cfg)
	r.SetupRoutes()

	return &App{
		config:      cfg,
		router:      r,
		redisClient: redisClient,
		configPath:  configPath,
		env:         env,
	}, nil
}

// GetConfig 获取配置实例
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// Start 启动应用程序
// 启动配置文件监听,支持日志配置热更新
func (a *App) Start() error {
	if err := config.StartConfigWatcher(a.configPath, a.env); err != nil {
		logger.LogSystemEvent("app", "config_watcher_failed", err.Error(), logrus.WarnLevel, nil)
	} else {
		_ = config.AddConfigReloadCallback(config.LogConfigReloadCallback)
		_ = config.AddConfigReloadCallback(config.ClassifierConfigReloadCallback)
		_ = config.AddConfigReloadCallback(func(oldConfig, newConfig *config.Config) error {
			if logger.LoggerInstance != nil {
				return logger.LoggerInstance.UpdateConfig(&newConfig.Log)
			}
			return nil
		})
	}

	logger.LogSystemEvent("app", "started", "application started", logrus.InfoLevel, map[string]interface{}{
		"name":    a.config.App.Name,
		"version": a.config.App.Version,
		"address": a.config.Server.GetAddress(),
	})
	return nil
}

// Stop 停止应用程序
func (a *App) Stop(ctx context.Context) error {
	_ = config.StopConfigWatcher()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.LogSystemEvent("app", "redis_close_failed", err.Error(), logrus.WarnLevel, nil)
		}
	}

	logger.LogSystemEvent("app", "stopped", "application stopped", logrus.InfoLevel, nil)
	return nil
}

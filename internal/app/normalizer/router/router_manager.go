/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2026.02.14
 * @description: 路由管理器，包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"neonorm/internal/app/normalizer/middleware"
	"neonorm/internal/config"
	inventoryHandler "neonorm/internal/handler/inventory"

	// 统一使用项目封装的日志模块，便于采集规范字段与统一输出
	"neonorm/internal/pkg/logger"
	"neonorm/internal/service/classify"
	"neonorm/internal/service/normalize"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	normalizeHandler  *inventoryHandler.NormalizeHandler
	auditLog          *classify.MemoryAuditLog
}

// NewRouter 创建路由管理器实例
// redisClient 可为 nil,此时分类器响应缓存关闭
func NewRouter(redisClient *redis.Client, config *config.Config) *Router {
	securityConfig := &config.Security

	// 调用审计:进程内观察者,记录每次分类器调用
	auditLog := classify.NewMemoryAuditLog()

	// 分类器响应缓存(redisClient为nil时所有操作为空操作)
	responseCache := classify.NewResponseCache(redisClient, config.Cache.Redis.TTL)

	// 根据配置选择分类器后端:模型后端或规则后端
	var ownerParser classify.OwnerParser
	var deviceClassifier classify.DeviceClassifier
	if config.Classifier.Enabled {
		llmClient := classify.NewLLMClient(config.Classifier.Endpoint, config.Classifier.Model, config.Classifier.Timeout)
		ownerParser = classify.NewLLMOwnerParser(llmClient, responseCache, auditLog)
		deviceClassifier = classify.NewLLMDeviceClassifier(llmClient, responseCache, auditLog)
	} else {
		ownerParser = classify.NewFallbackOwnerParser(auditLog)
		deviceClassifier = classify.NewFallbackDeviceClassifier(auditLog)
	}

	// 初始化归一化流水线与批量执行器
	pipeline := normalize.NewPipeline(ownerParser, deviceClassifier)
	runner := normalize.NewBatchRunner(pipeline, config.App.Normalize.WorkerNum)

	// 初始化中间件管理器
	middlewareManager := middleware.NewMiddlewareManager(securityConfig)

	// 初始化处理器(控制器是服务集合,先初始化服务,然后服务装填成控制器)
	normalizeHandler := inventoryHandler.NewNormalizeHandler(pipeline, runner, config.App.Normalize.MaxBatchSize)

	// 创建Gin引擎
	gin.SetMode(gin.ReleaseMode) // 设置为生产模式
	engine := gin.New()

	return &Router{
		config:            config,
		engine:            engine,
		middlewareManager: middlewareManager,
		normalizeHandler:  normalizeHandler,
		auditLog:          auditLog,
	}
}

// SetupRoutes 设置全局中间件和路由
// 在这里配置调用各个路由模块
func (r *Router) SetupRoutes() {
	// 1) 先注册全局中间件；2) 再注册各模块路由。
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetAuditLog 获取分类器调用审计日志
func (r *Router) GetAuditLog() *classify.MemoryAuditLog {
	return r.auditLog
}

// registerGlobalMiddleware 注册全局中间件
// 将全局中间件的挂载集中在一个方法中，便于统一管理与测试（只需在此处验证链条顺序）
func (r *Router) registerGlobalMiddleware() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"option":    "middlewareManager.attach",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("开始注册全局中间件")

	// 系统恢复中间件，防止 panic 直接导致进程崩溃
	r.engine.Use(gin.Recovery())

	if r.middlewareManager != nil {
		// 统一日志中间件
		r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
		// 限流中间件
		r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())
	}

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"option":    "middlewareManager.attach.done",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("全局中间件注册完成")
}

// registerRoutes 注册路由
// 将"中间件注册"和"各模块路由注册"的步骤分离，提升可维护性与可测试性
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"option":    "routes.attach.begin",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	// API 版本路由组：/api/v1
	api := r.engine.Group("/api")
	v1 := api.Group("/v1")

	// 资产清单归一化路由
	r.setupInventoryRoutes(v1)
	// 健康检查路由
	r.setupHealthRoutes(api)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"option":    "routes.attach.done",
		"func_name": "router.registerRoutes",
	}).Info("路由注册完成")
}

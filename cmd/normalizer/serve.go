/*
 * @author: sun977
 * @date: 2026.02.14
 * @description: serve 子命令 - 以HTTP服务模式运行归一化引擎
 * @func:
 * 1.加载配置并初始化应用
 * 2.启动HTTP服务器
 * 3.监听系统信号实现优雅关闭
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"neonorm/internal/app/normalizer"
	"neonorm/internal/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动归一化HTTP服务",
	Long:  `以HTTP服务模式启动NeoNorm,对外提供资产清单归一化接口.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() error {
	// 初始化应用(配置加载、日志、路由)
	app, err := normalizer.NewApp(cfgFile, env)
	if err != nil {
		return fmt.Errorf("应用初始化失败: %w", err)
	}

	cfg := app.GetConfig()

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           cfg.Server.GetAddress(),
		Handler:        app.GetRouter().GetEngine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动应用级组件(配置热重载等)
	if err := app.Start(); err != nil {
		return fmt.Errorf("应用启动失败: %w", err)
	}

	// 在goroutine中启动服务器
	go func() {
		logger.LogSystemEvent("http_server", "listening", "HTTP服务器开始监听", logrus.InfoLevel, map[string]interface{}{
			"address": server.Addr,
			"mode":    cfg.Server.Mode,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogSystemEvent("http_server", "listen_failed", err.Error(), logrus.ErrorLevel, map[string]interface{}{
				"address": server.Addr,
			})
			os.Exit(1)
		}
	}()

	// 等待中断信号优雅关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.LogSystemEvent("http_server", "shutting_down", "收到退出信号,正在优雅关闭", logrus.InfoLevel, nil)

	// 5秒超时的关闭上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}

	if err := app.Stop(ctx); err != nil {
		return fmt.Errorf("应用停止失败: %w", err)
	}

	logger.LogSystemEvent("http_server", "stopped", "HTTP服务器已停止", logrus.InfoLevel, nil)
	return nil
}

/*
 * @author: sun977
 * @date: 2026.02.14
 * @description: run 子命令 - 单机批处理模式
 * @func:
 * 1.读取原始资产清单CSV
 * 2.执行校验与归一化流水线
 * 3.输出归一化CSV、异常JSON与调用报告
 */

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"neonorm/internal/config"
	"neonorm/internal/pkg/logger"
	"neonorm/internal/service/classify"
	"neonorm/internal/service/ingest"
	"neonorm/internal/service/normalize"
)

var (
	runInput     string
	runOutputDir string
	runWorkers   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "批处理归一化资产清单CSV",
	Long: `读取原始资产清单CSV文件,执行校验与归一化,
输出 inventory_clean.csv、anomalies.json 以及分类器调用报告 prompts.md.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch()
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "inventory_raw.csv", "输入CSV文件路径")
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "输出目录 (默认取配置 app.normalize.output_dir)")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "并发worker数量 (默认取配置 app.normalize.worker_num)")
	rootCmd.AddCommand(runCmd)
}

func runBatch() error {
	// 加载配置与日志
	cfg, err := config.LoadConfig(cfgFile, env)
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}

	outputDir := runOutputDir
	if outputDir == "" {
		outputDir = cfg.App.Normalize.OutputDir
	}
	workerNum := runWorkers
	if workerNum <= 0 {
		workerNum = cfg.App.Normalize.WorkerNum
	}

	// 组装分类器后端(LLM或规则降级)
	auditLog := classify.NewMemoryAuditLog()
	var ownerParser classify.OwnerParser
	var deviceClassifier classify.DeviceClassifier
	if cfg.Classifier.Enabled {
		var redisClient *redis.Client
		if cfg.Cache.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:         cfg.Cache.Redis.GetRedisAddress(),
				Password:     cfg.Cache.Redis.Password,
				DB:           cfg.Cache.Redis.Database,
				PoolSize:     cfg.Cache.Redis.PoolSize,
				MinIdleConns: cfg.Cache.Redis.MinIdleConns,
			})
			defer redisClient.Close()
		}
		cache := classify.NewResponseCache(redisClient, cfg.Cache.Redis.TTL)
		client := classify.NewLLMClient(cfg.Classifier.Endpoint, cfg.Classifier.Model, cfg.Classifier.Timeout)
		ownerParser = classify.NewLLMOwnerParser(client, cache, auditLog)
		deviceClassifier = classify.NewLLMDeviceClassifier(client, cache, auditLog)
	} else {
		ownerParser = classify.NewFallbackOwnerParser(auditLog)
		deviceClassifier = classify.NewFallbackDeviceClassifier(auditLog)
	}

	// 读取输入
	records, err := ingest.ReadRecordsFile(runInput)
	if err != nil {
		return fmt.Errorf("读取输入文件失败: %w", err)
	}

	logger.LogSystemEvent("normalize_batch", "started", "批处理开始", logrus.InfoLevel, map[string]interface{}{
		"input":      runInput,
		"output_dir": outputDir,
		"records":    len(records),
		"workers":    workerNum,
	})

	// 执行归一化
	start := time.Now()
	pipeline := normalize.NewPipeline(ownerParser, deviceClassifier)
	runner := normalize.NewBatchRunner(pipeline, workerNum)
	result := runner.Run(context.Background(), records)

	// 写出结果
	cleanPath := filepath.Join(outputDir, "inventory_clean.csv")
	if err := ingest.WriteRecordsFile(cleanPath, result.Records); err != nil {
		return fmt.Errorf("写出归一化CSV失败: %w", err)
	}
	anomaliesPath := filepath.Join(outputDir, "anomalies.json")
	if err := ingest.WriteAnomaliesFile(anomaliesPath, result.Anomalies); err != nil {
		return fmt.Errorf("写出异常JSON失败: %w", err)
	}
	if cfg.App.Normalize.ReportEnabled {
		reportPath := filepath.Join(outputDir, "prompts.md")
		if err := ingest.WriteInvocationReportFile(reportPath, auditLog.Snapshot()); err != nil {
			return fmt.Errorf("写出调用报告失败: %w", err)
		}
	}

	logger.LogSystemEvent("normalize_batch", "finished", "批处理完成", logrus.InfoLevel, map[string]interface{}{
		"records":   len(result.Records),
		"anomalies": len(result.Anomalies),
		"calls":     len(auditLog.Snapshot()),
		"duration":  time.Since(start).String(),
	})

	fmt.Printf("处理完成: %d 条记录, %d 条异常, 输出目录 %s\n", len(result.Records), len(result.Anomalies), outputDir)
	return nil
}

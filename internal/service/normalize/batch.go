/**
 * 服务:批量归一化执行器
 * @author: sun977
 * @date: 2026.02.13
 * @description: 启动 Worker 并行处理记录,输出保持输入行序
 * @func: BatchRunner.Run
 * @note: 记录间无共享可变状态,并行度只影响吞吐,不影响输出内容和顺序
 */
package normalize

import (
	"context"
	"sync"

	"neonorm/internal/model/inventory"
	"neonorm/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

// defaultWorkerNum 默认 Worker 数量
const defaultWorkerNum = 5

// BatchResult 批处理结果
// Records 与输入一一对应且保持输入顺序;Anomalies 为有问题记录的异常,按输入顺序排列
type BatchResult struct {
	Records   []*inventory.NormalizedRecord `json:"records"`   // 归一化记录(输入顺序)
	Anomalies []*inventory.Anomaly          `json:"anomalies"` // 异常列表(输入顺序)
}

// BatchRunner 批量归一化执行器
type BatchRunner struct {
	pipeline  *Pipeline
	workerNum int
}

// NewBatchRunner 创建批量执行器
func NewBatchRunner(pipeline *Pipeline, workerNum int) *BatchRunner {
	if workerNum <= 0 {
		workerNum = defaultWorkerNum
	}
	return &BatchRunner{pipeline: pipeline, workerNum: workerNum}
}

// Run 并行处理一批记录
// 结果按下标回填,输出顺序与输入顺序严格一致,与 Worker 数量无关
func (r *BatchRunner) Run(ctx context.Context, records []*inventory.RawRecord) BatchResult {
	results := make([]*inventory.NormalizedRecord, len(records))
	anomalies := make([]*inventory.Anomaly, len(records))

	indexes := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < r.workerNum; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				record, anomaly := r.pipeline.ProcessRecord(ctx, records[idx])
				results[idx] = record
				anomalies[idx] = anomaly
			}
		}()
	}

	// 分发下标,上下文取消时停止派发但已派发的记录会处理完
	for idx := range records {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return compact(results, anomalies)
		case indexes <- idx:
		}
	}
	close(indexes)
	wg.Wait()

	logger.LogSystemEvent("normalize", "batch_completed", "Batch normalization finished", logrus.InfoLevel, map[string]interface{}{
		"records": len(records),
		"workers": r.workerNum,
	})

	return compact(results, anomalies)
}

// compact 去掉未产生异常的空位,保持输入顺序
func compact(records []*inventory.NormalizedRecord, anomalies []*inventory.Anomaly) BatchResult {
	compacted := make([]*inventory.Anomaly, 0, len(anomalies))
	for _, a := range anomalies {
		if a != nil {
			compacted = append(compacted, a)
		}
	}
	return BatchResult{Records: records, Anomalies: compacted}
}

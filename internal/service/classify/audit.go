/**
 * 服务:分类器调用审计
 * @author: sun977
 * @date: 2026.02.12
 * @description: 进程内的分类器调用审计日志,按调用顺序记录
 * @note: 以注入观察者的形式挂接,不注入不影响正确性;无全局状态
 */
package classify

import "sync"

// MemoryAuditLog 内存审计日志
// 并发安全,批处理多worker时多条记录可能交叉写入
type MemoryAuditLog struct {
	mu    sync.Mutex
	calls []Invocation
}

// NewMemoryAuditLog 创建内存审计日志
func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{}
}

// Observe 记录一次调用
func (l *MemoryAuditLog) Observe(inv Invocation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, inv)
}

// Snapshot 返回当前记录的副本
func (l *MemoryAuditLog) Snapshot() []Invocation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Invocation, len(l.calls))
	copy(out, l.calls)
	return out
}

// CountByPurpose 按调用目的统计次数
func (l *MemoryAuditLog) CountByPurpose(purpose string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, inv := range l.calls {
		if inv.Purpose == purpose {
			n++
		}
	}
	return n
}

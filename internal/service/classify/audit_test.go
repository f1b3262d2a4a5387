/**
 * 测试:分类器调用审计
 * @author: sun977
 * @date: 2026.02.12
 */
package classify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryAuditLogRecordsInOrder(t *testing.T) {
	auditLog := NewMemoryAuditLog()

	auditLog.Observe(Invocation{Purpose: PurposeOwnerParsing, SourceRowID: "r1"})
	auditLog.Observe(Invocation{Purpose: PurposeDeviceTypeClass, SourceRowID: "r1"})
	auditLog.Observe(Invocation{Purpose: PurposeOwnerParsing, SourceRowID: "r2"})

	calls := auditLog.Snapshot()
	assert.Len(t, calls, 3)
	assert.Equal(t, "r1", calls[0].SourceRowID)
	assert.Equal(t, PurposeDeviceTypeClass, calls[1].Purpose)
	assert.Equal(t, "r2", calls[2].SourceRowID)

	assert.Equal(t, 2, auditLog.CountByPurpose(PurposeOwnerParsing))
	assert.Equal(t, 1, auditLog.CountByPurpose(PurposeDeviceTypeClass))
	assert.Equal(t, 0, auditLog.CountByPurpose("something_else"))
}

func TestMemoryAuditLogSnapshotIsCopy(t *testing.T) {
	auditLog := NewMemoryAuditLog()
	auditLog.Observe(Invocation{Purpose: PurposeOwnerParsing, SourceRowID: "r1"})

	snapshot := auditLog.Snapshot()
	snapshot[0].SourceRowID = "mutated"

	assert.Equal(t, "r1", auditLog.Snapshot()[0].SourceRowID)
}

func TestMemoryAuditLogConcurrentObserve(t *testing.T) {
	auditLog := NewMemoryAuditLog()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				auditLog.Observe(Invocation{
					Purpose:     PurposeDeviceTypeClass,
					SourceRowID: fmt.Sprintf("w%d-%d", n, j),
				})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, auditLog.Snapshot(), 200)
	assert.Equal(t, 200, auditLog.CountByPurpose(PurposeDeviceTypeClass))
}

func TestNotifyObserverNilSafe(t *testing.T) {
	// 不注入观察者不影响正确性
	assert.NotPanics(t, func() {
		notifyObserver(nil, Invocation{Purpose: PurposeOwnerParsing})
	})
}

func TestNotifyObserverStampsTimestamp(t *testing.T) {
	auditLog := NewMemoryAuditLog()
	notifyObserver(auditLog, Invocation{Purpose: PurposeOwnerParsing})

	calls := auditLog.Snapshot()
	assert.Len(t, calls, 1)
	assert.False(t, calls[0].Timestamp.IsZero())
}

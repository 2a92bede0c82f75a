package slack

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoroutineExecutorSubmit(t *testing.T) {
	executor := NewGoroutineExecutor()
	const taskCount = 50
	var completed int64
	wg := sync.WaitGroup{}
	for i := 0; i < taskCount; i++ {
		wg.Add(1)
		executor.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&completed, 1)
		})
	}
	wg.Wait()
	require.Equal(t, int64(taskCount), atomic.LoadInt64(&completed))
}

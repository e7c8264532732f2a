package watcher_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/splitter/internal/adapters/watcher"
)

func TestDebouncer_Add_CoalescesSorted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/b.fs")
		d.Add("/project/src/a.fs")
		d.Add("/project/src/b.fs")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/src/a.fs", "/project/src/b.fs"}, receivedPaths)
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount atomic.Int32

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			callCount.Add(1)
		})

		d.Add("/project/src/file1.fs")
		time.Sleep(50 * time.Millisecond)

		// Second add restarts the window.
		d.Add("/project/src/file2.fs")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), callCount.Load())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, int32(1), callCount.Load())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	t.Run("immediate", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var receivedPaths []string
			d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
				receivedPaths = paths
			})

			d.Add("/project/src/file1.fs")
			d.Add("/project/src/file2.fs")
			d.Flush()

			assert.Equal(t, []string{"/project/src/file1.fs", "/project/src/file2.fs"}, receivedPaths)
		})
	})

	t.Run("empty", func(t *testing.T) {
		var callCount int
		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) { callCount++ })
		d.Flush()
		assert.Equal(t, 0, callCount)
	})

	t.Run("after fire", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var callCount int
			d := watcher.NewDebouncer(50*time.Millisecond, func([]string) { callCount++ })

			d.Add("/project/src/file1.fs")
			time.Sleep(100 * time.Millisecond)
			synctest.Wait()
			require.Equal(t, 1, callCount)

			d.Flush()
			assert.Equal(t, 1, callCount)
		})
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/project/src/file1.fs")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Wait()
	})
}

func TestDebouncer_CallbacksDoNotOverlap(t *testing.T) {
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		batches int
	)
	release := make(chan struct{})

	d := watcher.NewDebouncer(10*time.Millisecond, func([]string) {
		mu.Lock()
		active++
		batches++
		if active > maxSeen {
			maxSeen = active
		}
		first := batches == 1
		mu.Unlock()

		if first {
			<-release
		}

		mu.Lock()
		active--
		mu.Unlock()
	})

	d.Add("/a")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return batches == 1
	}, time.Second, 5*time.Millisecond)

	// A second batch becomes ready while the first callback is blocked.
	d.Add("/b")
	time.Sleep(50 * time.Millisecond)
	close(release)
	d.Wait()

	assert.Equal(t, 2, batches)
	assert.Equal(t, 1, maxSeen)
}

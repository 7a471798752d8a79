//go:build unit

package debounce_test

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"unicart/internal/pkg/debounce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)

	var (
		mu   sync.Mutex
		seen []int
	)
	for i := range 5 {
		d.Schedule("cart:u1:market", func() {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, i)
		})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{4}, seen, "only the last scheduled func runs")
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule("a", func() { calls.Add(1) })
	d.Schedule("b", func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_FlushRunsPendingImmediately(t *testing.T) {
	d := debounce.New(time.Hour)
	var calls atomic.Int32

	d.Schedule("a", func() { calls.Add(1) })
	d.Schedule("b", func() { calls.Add(1) })
	assert.Equal(t, 2, d.Pending())

	d.Flush()

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_CloseRunsSynchronouslyAfterwards(t *testing.T) {
	d := debounce.New(time.Hour)
	var calls atomic.Int32

	d.Schedule("a", func() { calls.Add(1) })
	d.Close()
	require.Equal(t, int32(1), calls.Load())

	d.Schedule("a", func() { calls.Add(1) })
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_CloseWaitsForFiredFunc(t *testing.T) {
	d := debounce.New(time.Millisecond)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	d.Schedule("a", func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started
	require.Equal(t, 0, d.Pending(), "the timer already took the func off pending")

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a fired func was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after the func finished")
	}
	assert.True(t, finished.Load())
}

func TestDebouncer_ForgetsIdleKeys(t *testing.T) {
	d := debounce.New(time.Millisecond)
	var calls atomic.Int32

	for i := range 50 {
		d.Schedule("user-"+strconv.Itoa(i), func() { calls.Add(1) })
	}
	require.Eventually(t, func() bool { return calls.Load() == 50 }, time.Second, 5*time.Millisecond)
	d.Flush()

	assert.Equal(t, 0, d.Tracked())
	assert.Equal(t, 0, d.Pending())
}

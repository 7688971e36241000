package poll

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_BurstCollapsesToOneCall(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 5*time.Millisecond)

	// Quiet period: no further calls.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	var calls int32
	d := NewDebouncer(10*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	time.Sleep(30 * time.Millisecond)
	d.Trigger()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	d.Trigger()
	d.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	// Triggers after Stop are ignored.
	d.Trigger()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

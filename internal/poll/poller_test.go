package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller_RunsOnInterval(t *testing.T) {
	var runs int32
	p := NewPoller(10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	p.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	p.Stop()

	got := atomic.LoadInt32(&runs)
	assert.GreaterOrEqual(t, got, int32(3))
}

func TestPoller_KickRunsImmediately(t *testing.T) {
	var runs int32
	p := NewPoller(time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	p.Start(context.Background())
	p.Kick()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) == 1
	}, time.Second, 5*time.Millisecond)

	p.Stop()
}

func TestPoller_RunsNeverOverlap(t *testing.T) {
	var active, maxActive int32
	p := NewPoller(5*time.Millisecond, func(ctx context.Context) error {
		cur := atomic.AddInt32(&active, 1)
		if cur > atomic.LoadInt32(&maxActive) {
			atomic.StoreInt32(&maxActive, cur)
		}
		time.Sleep(15 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})

	p.Start(context.Background())
	for i := 0; i < 10; i++ {
		p.Kick()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestPoller_StopWaitsForInFlightRun(t *testing.T) {
	done := make(chan struct{}, 1)
	p := NewPoller(5*time.Millisecond, func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond) // let a run start
	p.Stop()

	select {
	case <-done:
	default:
		t.Fatal("Stop returned before the in-flight run finished")
	}
}

func TestPoller_StartIsIdempotent(t *testing.T) {
	var runs int32
	p := NewPoller(10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	ctx := context.Background()
	p.Start(ctx)
	p.Start(ctx)
	time.Sleep(35 * time.Millisecond)
	p.Stop()

	// A second Start must not double the tick rate.
	assert.LessOrEqual(t, atomic.LoadInt32(&runs), int32(4))
}

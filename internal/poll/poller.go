// Package poll provides the timing primitives behind payment status
// refreshing: a fixed-interval poller and a trailing-edge debouncer.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

const DefaultInterval = 5 * time.Second

// Poller runs fn on a fixed interval. Runs never overlap: the loop is
// a single goroutine, and a Kick during a run only schedules one more.
type Poller struct {
	interval time.Duration
	fn       func(context.Context) error

	kick chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewPoller(interval time.Duration, fn func(context.Context) error) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		interval: interval,
		fn:       fn,
		kick:     make(chan struct{}, 1),
	}
}

func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.kick:
		}

		if err := p.fn(ctx); err != nil && ctx.Err() == nil {
			logger.L().Warn("poll run failed", zap.Error(err))
		}
	}
}

// Kick requests an immediate run. No-op when one is already queued.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done, started := p.cancel, p.done, p.started
	p.started = false
	p.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-done
}

// Package poller provides a cancellable fixed-interval task, the pattern
// behind dashboard-style refresh loops.
package poller

import (
	"context"
	"time"
)

// Poller runs a task on a fixed interval. The task executes synchronously
// inside the poll goroutine, so Stop never returns while a tick is still
// in flight and no callback runs after Stop returns.
type Poller struct {
	interval time.Duration
	task     func(context.Context)

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller for task at the given interval
func New(interval time.Duration, task func(context.Context)) *Poller {
	return &Poller{interval: interval, task: task}
}

// Start begins polling. The task runs once immediately, then on every
// interval until Stop is called or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	if p.done != nil {
		return // already running
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.task(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.task(ctx)
			}
		}
	}()
}

// Stop cancels polling and waits for any in-flight tick to finish
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

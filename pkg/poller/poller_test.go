package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerRunsImmediatelyThenOnInterval(t *testing.T) {
	var ticks atomic.Int32
	p := New(10*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	p.Start(context.Background())
	defer p.Stop()

	// The first run happens before the first interval elapses
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestPollerStopIsCleanAndFinal(t *testing.T) {
	var ticks atomic.Int32
	p := New(5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	p.Start(context.Background())
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	p.Stop()

	// No tick lands after Stop returns
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	// Stopping twice is harmless
	p.Stop()
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	var ticks atomic.Int32
	p := New(5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	// Stop after cancellation still returns promptly
	p.Stop()
}

func TestPollerStartWhileRunningIsNoOp(t *testing.T) {
	var ticks atomic.Int32
	p := New(5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
}

func TestPollerTaskSeesCancellation(t *testing.T) {
	sawCancel := make(chan struct{}, 1)
	started := make(chan struct{}, 1)
	p := New(time.Minute, func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		select {
		case sawCancel <- struct{}{}:
		default:
		}
	})

	p.Start(context.Background())
	<-started
	p.Stop()

	select {
	case <-sawCancel:
	default:
		t.Fatal("task did not observe cancellation before Stop returned")
	}
}

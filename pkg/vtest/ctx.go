package vtest

import (
	"context"
	"sync"
	"time"
)

// Ctx is a manually driven vango.Ctx.
type Ctx struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCtx creates an empty Ctx.
func NewCtx() *Ctx {
	ctx, cancel := context.WithCancel(context.Background())
	return &Ctx{
		notify: make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Dispatch queues fn. Safe from any goroutine.
func (c *Ctx) Dispatch(fn func()) {
	c.mu.Lock()
	c.queue = append(c.queue, fn)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// StdContext returns a context cancelled by Close.
func (c *Ctx) StdContext() context.Context {
	return c.ctx
}

// Pending reports how many funcs are queued.
func (c *Ctx) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Drain runs queued funcs on the calling goroutine, including funcs they
// dispatch, until the queue is empty. It returns how many ran.
func (c *Ctx) Drain() int {
	ran := 0
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return ran
		}
		fn := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		fn()
		ran++
	}
}

// WaitDispatch blocks until at least one func is queued or timeout elapses.
// It reports whether the queue is non-empty.
func (c *Ctx) WaitDispatch(timeout time.Duration) bool {
	if c.Pending() > 0 {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-c.notify:
			if c.Pending() > 0 {
				return true
			}
		case <-timer.C:
			return c.Pending() > 0
		}
	}
}

// Close cancels StdContext and drops anything still queued.
func (c *Ctx) Close() {
	c.cancel()
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
}

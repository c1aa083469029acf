package vango

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// queueCtx collects dispatched funcs until the test drains them.
type queueCtx struct {
	mu     sync.Mutex
	queued []func()
	ready  chan struct{}
}

func newQueueCtx() *queueCtx {
	return &queueCtx{ready: make(chan struct{}, 16)}
}

func (q *queueCtx) Dispatch(fn func()) {
	q.mu.Lock()
	q.queued = append(q.queued, fn)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *queueCtx) StdContext() context.Context { return context.Background() }

func (q *queueCtx) drain() int {
	q.mu.Lock()
	fns := q.queued
	q.queued = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func TestTimeoutFiresThroughDispatch(t *testing.T) {
	q := newQueueCtx()

	var called atomic.Bool
	var cleanup Cleanup
	WithCtx(q, func() {
		cleanup = Timeout(5*time.Millisecond, func() { called.Store(true) })
	})
	defer cleanup()

	select {
	case <-q.ready:
	case <-time.After(time.Second):
		t.Fatal("timer never dispatched")
	}
	if called.Load() {
		t.Error("callback must not run before the loop drains it")
	}
	if n := q.drain(); n != 1 {
		t.Errorf("expected 1 dispatched func, got %d", n)
	}
	if !called.Load() {
		t.Error("callback should run when drained")
	}
}

func TestTimeoutCancelBeforeFire(t *testing.T) {
	q := newQueueCtx()

	var called atomic.Bool
	var cleanup Cleanup
	WithCtx(q, func() {
		cleanup = Timeout(20*time.Millisecond, func() { called.Store(true) })
	})
	cleanup()

	time.Sleep(40 * time.Millisecond)
	q.drain()
	if called.Load() {
		t.Error("cancelled timeout should not fire")
	}
}

func TestTimeoutCancelAfterDispatch(t *testing.T) {
	q := newQueueCtx()

	var called atomic.Bool
	var cleanup Cleanup
	WithCtx(q, func() {
		cleanup = Timeout(time.Millisecond, func() { called.Store(true) }, TimeoutTxName("late"))
	})

	<-q.ready
	cleanup()
	q.drain()
	if called.Load() {
		t.Error("cancel between dispatch and drain should suppress the callback")
	}
}

func TestTimeoutWithoutCtxPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrEffectContext {
			t.Errorf("expected ErrEffectContext panic, got %v", r)
		}
	}()
	Timeout(time.Millisecond, func() {})
}

package vango

import "context"

// Ctx is the runtime context of the host that owns a component: the event
// loop that serializes its handlers.
type Ctx interface {
	// Dispatch queues fn to run on the event loop. Safe from any goroutine.
	Dispatch(fn func())

	// StdContext returns the context.Context for the loop's lifetime.
	StdContext() context.Context
}

// UseCtx returns the Ctx installed by WithCtx, or nil outside of one.
func UseCtx() Ctx {
	if tc := peekTrackingContext(); tc != nil {
		return tc.ctx
	}
	return nil
}

// Package vango provides the reactive core that drives signup components.
//
// State lives in signals. Effects read signals and re-run after any of them
// change. Every effect belongs to an Owner, and disposing the owner disposes
// its effects and runs their cleanups.
//
//	owner := vango.NewOwner(nil)
//	count := vango.NewSignal(0)
//
//	vango.WithOwner(owner, func() {
//	    vango.CreateEffect(func() vango.Cleanup {
//	        fmt.Println("count is", count.Get())
//	        return nil
//	    })
//	})
//
//	count.Set(1)
//	owner.RunPendingEffects() // prints "count is 1"
//
// # Scheduling
//
// Signal writes never run effects inline. A write marks dependent effects
// dirty and queues them on their owner; the host runs the queue once the
// event handler returns. Work that finishes on another goroutine (such as a
// Timeout) re-enters the host's event loop through Ctx.Dispatch.
//
// # Batching
//
// Batch and Tx group writes so dependents are notified once:
//
//	vango.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
//
// # Tracking
//
// The tracking context (current owner, listener, runtime Ctx and batch depth)
// is kept per goroutine. Code that creates effects from a new goroutine must
// re-establish it with WithOwner and WithCtx.
package vango

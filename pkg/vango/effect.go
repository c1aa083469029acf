package vango

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when the signals it read change.
//
// An effect runs once when created. Its function may return a Cleanup, which
// runs before the next run and when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sourcesMu sync.Mutex
	sources   []*source

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool

	runs   atomic.Uint64
	txName string
}

// MarkDirty schedules the effect on its owner. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) && e.owner != nil {
		e.owner.scheduleEffect(e)
	}
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs reports how many times the effect body has executed.
func (e *Effect) Runs() uint64 {
	return e.runs.Load()
}

// Name returns the name given with EffectTxName.
func (e *Effect) Name() string {
	return e.txName
}

func (e *Effect) addSource(src *source) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == src {
			return
		}
	}
	e.sources = append(e.sources, src)
}

// dropSources unsubscribes from everything read during the previous run.
func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	sources := e.sources
	e.sources = nil
	e.sourcesMu.Unlock()

	for _, src := range sources {
		src.unsubscribe(e)
	}
}

// run executes the effect body, re-collecting its dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()

	prev := setCurrentListener(e)
	defer func() {
		setCurrentListener(prev)
		releaseTrackingContext(getTrackingContext())
	}()

	e.runs.Add(1)
	e.cleanup = e.fn()
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()
}

// EffectOption configures an Effect.
type EffectOption func(*Effect)

// EffectTxName names the effect for logs and debugging.
func EffectTxName(name string) EffectOption {
	return func(e *Effect) {
		e.txName = name
	}
}

// CreateEffect creates an effect owned by the current owner and runs it.
//
//	vango.CreateEffect(func() vango.Cleanup {
//	    if !ready.Get() {
//	        return nil
//	    }
//	    return vango.Timeout(time.Second, notify)
//	})
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	for _, opt := range opts {
		opt(e)
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	e.run()
	return e
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

package vango

import (
	"runtime"
	"sync"
)

// trackingContext is the reactive state of one goroutine.
type trackingContext struct {
	owner    *Owner
	listener Listener
	ctx      Ctx

	batchDepth     int
	pendingUpdates []Listener
}

var trackingContexts sync.Map // goroutine id -> *trackingContext

// goroutineID parses the current goroutine's id from its stack header
// ("goroutine 42 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

// releaseTrackingContext forgets the current goroutine's context once it
// holds nothing worth keeping.
func releaseTrackingContext(tc *trackingContext) {
	if tc.owner == nil && tc.listener == nil && tc.ctx == nil && tc.batchDepth == 0 {
		trackingContexts.Delete(goroutineID())
	}
}

// peekTrackingContext returns the current goroutine's context without
// creating one.
func peekTrackingContext() *trackingContext {
	if tc, ok := trackingContexts.Load(goroutineID()); ok {
		return tc.(*trackingContext)
	}
	return nil
}

func getCurrentListener() Listener {
	if tc := peekTrackingContext(); tc != nil {
		return tc.listener
	}
	return nil
}

func setCurrentListener(l Listener) Listener {
	tc := getTrackingContext()
	old := tc.listener
	tc.listener = l
	return old
}

func getCurrentOwner() *Owner {
	if tc := peekTrackingContext(); tc != nil {
		return tc.owner
	}
	return nil
}

func setCurrentOwner(o *Owner) *Owner {
	tc := getTrackingContext()
	old := tc.owner
	tc.owner = o
	return old
}

func setCurrentCtx(c Ctx) Ctx {
	tc := getTrackingContext()
	old := tc.ctx
	tc.ctx = c
	return old
}

func getBatchDepth() int {
	if tc := peekTrackingContext(); tc != nil {
		return tc.batchDepth
	}
	return 0
}

func queuePendingUpdate(l Listener) {
	tc := getTrackingContext()
	tc.pendingUpdates = append(tc.pendingUpdates, l)
}

// WithOwner runs fn with owner as the owner of newly created effects.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer func() {
		setCurrentOwner(old)
		releaseTrackingContext(getTrackingContext())
	}()
	fn()
}

// WithCtx runs fn with c available through UseCtx. Hosts wrap event
// handling and pending-effect runs in it.
func WithCtx(c Ctx, fn func()) {
	old := setCurrentCtx(c)
	defer func() {
		setCurrentCtx(old)
		releaseTrackingContext(getTrackingContext())
	}()
	fn()
}

// Untracked runs fn without subscribing to anything it reads.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer func() {
		setCurrentListener(old)
		releaseTrackingContext(getTrackingContext())
	}()
	fn()
}

// WithListener runs fn with l subscribed to every signal read inside it.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer func() {
		setCurrentListener(old)
		releaseTrackingContext(getTrackingContext())
	}()
	fn()
}

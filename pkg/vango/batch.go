package vango

import "log/slog"

// DebugMode logs transaction boundaries through slog at debug level.
// Set it at startup.
var DebugMode bool

// Batch groups signal writes so each affected listener is notified once,
// when the outermost batch returns.
//
//	Batch(func() {
//	    email.Set("a@b.co")
//	    password.Set("secret")
//	})
func Batch(fn func()) {
	tc := getTrackingContext()
	tc.batchDepth++

	defer func() {
		tc.batchDepth--
		if tc.batchDepth == 0 {
			flushPendingUpdates(tc)
			releaseTrackingContext(tc)
		}
	}()

	fn()
}

// flushPendingUpdates notifies each queued listener once, in queue order.
func flushPendingUpdates(tc *trackingContext) {
	updates := tc.pendingUpdates
	tc.pendingUpdates = nil
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]struct{}, len(updates))
	for _, l := range updates {
		id := l.ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		l.MarkDirty()
	}
}

// Tx is an alias for Batch.
func Tx(fn func()) {
	Batch(fn)
}

// TxNamed runs fn as a batch and, in DebugMode, logs its boundaries.
func TxNamed(name string, fn func()) {
	if DebugMode {
		slog.Debug("tx start", "name", name)
		defer slog.Debug("tx end", "name", name)
	}
	Batch(fn)
}

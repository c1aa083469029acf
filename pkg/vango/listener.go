package vango

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication in batches.
	ID() uint64
}

// Cleanup is returned by effects and helpers to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

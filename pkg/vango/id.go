package vango

import "sync/atomic"

var idCounter atomic.Uint64

// nextID returns the next identifier for a signal, effect or owner.
func nextID() uint64 {
	return idCounter.Add(1)
}

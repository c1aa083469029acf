package vango

import "testing"

func TestBatchSingleNotification(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification (batched), got %d", listener.getDirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
		})
		if listener.getDirtyCount() != 0 {
			t.Error("inner batch should not flush")
		}
		count.Set(3)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.getDirtyCount())
	}
}

func TestTxNamedBatches(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	TxNamed("increment", func() {
		count.Set(1)
		count.Set(2)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
	if count.Peek() != 2 {
		t.Errorf("expected 2, got %d", count.Peek())
	}
}

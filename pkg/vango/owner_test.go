package vango

import "testing"

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	if child.Parent() != root {
		t.Error("child should reference its parent")
	}
	if root.Parent() != nil {
		t.Error("root should have no parent")
	}
	if child.ID() == root.ID() {
		t.Error("owners should have distinct IDs")
	}

	root.Dispose()
	if !child.IsDisposed() {
		t.Error("disposing the root should dispose children")
	}
}

func TestOwnerCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)

	var order []int
	owner.OnCleanup(func() { order = append(order, 1) })
	owner.OnCleanup(func() { order = append(order, 2) })
	owner.OnCleanup(func() { order = append(order, 3) })

	owner.Dispose()

	want := []int{3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected cleanups in reverse order %v, got %v", want, order)
		}
	}
}

func TestOwnerCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerDisposeIdempotent(t *testing.T) {
	owner := NewOwner(nil)
	count := 0
	owner.OnCleanup(func() { count++ })

	owner.Dispose()
	owner.Dispose()

	if count != 1 {
		t.Errorf("expected cleanup to run once, got %d", count)
	}
}

func TestOnUnmount(t *testing.T) {
	owner := NewOwner(nil)
	ran := false
	WithOwner(owner, func() {
		OnUnmount(func() { ran = true })
	})

	owner.Dispose()
	if !ran {
		t.Error("OnUnmount callback should run on dispose")
	}
}

func TestRunPendingEffectsRecursesIntoChildren(t *testing.T) {
	root := NewOwner(nil)
	defer root.Dispose()
	child := NewOwner(root)

	count := NewSignal(0)
	var e *Effect
	WithOwner(child, func() {
		e = CreateEffect(func() Cleanup {
			_ = count.Get()
			return nil
		})
	})

	count.Set(1)
	if !root.HasPendingEffects() {
		t.Error("root should report child's pending effects")
	}
	root.RunPendingEffects()
	if e.Runs() != 2 {
		t.Errorf("expected child effect to re-run, got %d runs", e.Runs())
	}
}

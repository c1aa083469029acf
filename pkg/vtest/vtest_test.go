package vtest

import (
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/signup/pkg/vdom"
)

func TestCtxDrainRunsInOrder(t *testing.T) {
	ctx := NewCtx()
	defer ctx.Close()

	var got []int
	ctx.Dispatch(func() { got = append(got, 1) })
	ctx.Dispatch(func() {
		got = append(got, 2)
		ctx.Dispatch(func() { got = append(got, 3) })
	})

	if n := ctx.Drain(); n != 3 {
		t.Errorf("Drain() = %d, want 3", n)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("unexpected order %v", got)
	}
	if ctx.Pending() != 0 {
		t.Error("queue should be empty")
	}
}

func TestCtxWaitDispatch(t *testing.T) {
	ctx := NewCtx()
	defer ctx.Close()

	if ctx.WaitDispatch(10 * time.Millisecond) {
		t.Fatal("nothing was dispatched")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	time.AfterFunc(5*time.Millisecond, func() {
		defer wg.Done()
		ctx.Dispatch(func() {})
	})
	if !ctx.WaitDispatch(time.Second) {
		t.Fatal("expected dispatch")
	}
	wg.Wait()
	ctx.Drain()
}

func TestCtxClose(t *testing.T) {
	ctx := NewCtx()
	ctx.Dispatch(func() { t.Error("closed ctx must not run queued funcs") })
	ctx.Close()

	if ctx.Drain() != 0 {
		t.Error("Close should drop the queue")
	}
	select {
	case <-ctx.StdContext().Done():
	default:
		t.Error("StdContext should be cancelled")
	}
}

func TestFire(t *testing.T) {
	var typed string
	submitted := false
	node := vdom.Form(
		vdom.OnSubmit(func() { submitted = true }),
		vdom.Input(vdom.Name("email"), vdom.OnInput(func(v string) { typed = v })),
	)

	Fire(t, node, "email", "input", "a@b.co")
	FireTag(t, node, "form", "submit")

	if typed != "a@b.co" {
		t.Errorf("handler got %q", typed)
	}
	if !submitted {
		t.Error("submit handler not called")
	}
}

func TestExpectations(t *testing.T) {
	node := vdom.Div(vdom.Class("box"), vdom.Button(vdom.Disabled(), vdom.Text("Go")))

	ExpectContains(t, node, "Go")
	ExpectNotContains(t, node, "Stop")
	ExpectElement(t, node, "button")
	ExpectAttribute(t, node, "class", "box")
	ExpectDisabled(t, node, "button", true)
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Error("short strings are unchanged")
	}
	if truncate("0123456789", 4) != "0123..." {
		t.Error("long strings are cut with an ellipsis")
	}
}

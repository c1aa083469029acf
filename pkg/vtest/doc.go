// Package vtest provides testing helpers for Vango components.
//
// # Deterministic dispatch
//
// Ctx is a vango.Ctx whose Dispatch only queues. Nothing runs until the
// test calls Drain, so timer callbacks execute on the test goroutine at a
// point the test chooses:
//
//	ctx := vtest.NewCtx()
//	defer ctx.Close()
//
//	c := signup.New(ctx, signup.WithFocusDelay(10*time.Millisecond), ...)
//	...
//	if !ctx.WaitDispatch(time.Second) {
//	    t.Fatal("focus timer never fired")
//	}
//	ctx.Drain()
//
// # Render assertions
//
//	vtest.ExpectContains(t, c.Render(), "form-error")
//	vtest.ExpectAttribute(t, c.Render(), "name", "email")
//
// # Events
//
// Fire finds an input by name and calls its handler the way the live
// client would:
//
//	vtest.Fire(t, c.Render(), "email", "input", "user@example.com")
package vtest

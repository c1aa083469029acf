// Package signup implements a registration form as a server-driven
// component: email, password and password confirmation, validated as the
// user types and leaves each field, with a password strength indicator and
// a submit button that is enabled only while the form is valid.
//
// The form is an immutable State snapshot. Every change or blur event
// produces the next snapshot through a pure reducer (Apply); a Controller
// holds the current snapshot in a signal, renders it, and runs one effect:
// when the form becomes valid, focus moves to the submit button after a
// short delay. Any later change cancels the pending focus.
//
//	c := signup.New(ctx,
//	    signup.WithSink(sink),
//	    signup.WithFocus(func(target string) { ... }),
//	)
//	defer c.Dispose()
//
//	c.OnEmailChange("user@example.com")
//	c.OnEmailBlur("user@example.com")
//
// A Controller is not safe for concurrent use. Hosts call it from the event
// loop behind the vango.Ctx it was created with.
package signup

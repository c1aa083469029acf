// Package vdom provides the virtual DOM used to describe signup views.
//
// A VNode is an element, text, fragment, component or raw HTML node.
// Elements are built with variadic factories that accept attributes,
// event handlers, children and strings in any order:
//
//	Form(Class("signup-form"), OnSubmit(submit),
//	    Input(Type("email"), Name("email"), OnInput(onEmail)),
//	    Button(Type("submit"), Text("Register")),
//	)
//
// Event handlers are stored in Props under "on<event>" keys. Hosts look
// them up with FindByName/Handler and call them with the event value.
package vdom

package vdom

func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnInput fires on every value change of an input.
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange fires when an input's value is committed.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnBlur fires when an element loses focus.
func OnBlur(handler any) EventHandler { return event("blur", handler) }

// OnFocus fires when an element gains focus.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnSubmit fires when a form is submitted.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnClick fires on click.
func OnClick(handler any) EventHandler { return event("click", handler) }

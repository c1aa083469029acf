package form

import "github.com/vango-dev/signup/pkg/vdom"

// Field renders input preceded by its error message. The message block is
// omitted when message is empty, and the input is marked aria-invalid while
// one is shown.
func Field(name string, input *vdom.VNode, message string) *vdom.VNode {
	if message == "" {
		return vdom.Fragment(input)
	}

	errID := name + "-error"
	if input != nil && input.Kind == vdom.KindElement {
		input.Props["aria-invalid"] = true
		input.Props["aria-describedby"] = errID
	}

	return vdom.Fragment(
		vdom.Div(
			vdom.Class("form-error"),
			vdom.ID(errID),
			vdom.Role("alert"),
			vdom.Text(message),
		),
		input,
	)
}

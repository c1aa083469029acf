package signup

import (
	"fmt"

	"github.com/vango-dev/signup/pkg/features/form"
	. "github.com/vango-dev/signup/pkg/vdom"
)

// Render returns the form for the current snapshot. Inputs carry their
// handlers, so a host can route client events back by input name.
func (c *Controller) Render() *VNode {
	return View(c.state.Get(), c.catalog, Handlers{
		EmailChange:          c.OnEmailChange,
		EmailBlur:            c.OnEmailBlur,
		PasswordChange:       c.OnPasswordChange,
		PasswordBlur:         c.OnPasswordBlur,
		RepeatPasswordChange: c.OnRepeatPasswordChange,
		RepeatPasswordBlur:   c.OnPasswordRepeatBlur,
		Submit:               c.onSubmit,
	})
}

// Handlers are the callbacks View binds. Nil handlers are not bound.
type Handlers struct {
	EmailChange          func(string)
	EmailBlur            func(string)
	PasswordChange       func(string)
	PasswordBlur         func(string)
	RepeatPasswordChange func(string)
	RepeatPasswordBlur   func(string)
	Submit               func()
}

// View renders s without a Controller, for static pages and previews.
func View(s State, cat *Catalog, h Handlers) *VNode {
	if cat == nil {
		cat = russian
	}
	valid := s.Valid()

	return Div(Class("form-container"),
		Form(
			Class("signup-form"),
			Method("post"),
			Action("/"),
			Novalidate(),
			onSubmit(h.Submit),

			form.Field(string(FieldEmail),
				textInput(FieldEmail, "email", s.Form.Email, cat, h.EmailChange, h.EmailBlur),
				cat.Message(s.Errors.Email)),

			form.Field(string(FieldPassword),
				textInput(FieldPassword, "password", s.Form.Password, cat, h.PasswordChange, h.PasswordBlur),
				cat.Message(s.Errors.Password)),

			When(s.Form.Password != "", func() *VNode {
				return strengthBar(s.Strength, cat)
			}),

			form.Field(string(FieldRepeatPassword),
				textInput(FieldRepeatPassword, "password", s.Form.RepeatPassword, cat, h.RepeatPasswordChange, h.RepeatPasswordBlur),
				cat.Message(s.Errors.RepeatPassword)),

			Button(
				Class("submit-button"),
				ID("submit"),
				Type("submit"),
				AttrIf(!valid, Disabled()),
				Text(cat.SubmitLabel()),
			),
		),
	)
}

func textInput(field Field, inputType, value string, cat *Catalog, change, blur func(string)) *VNode {
	autocomplete := "new-password"
	if field == FieldEmail {
		autocomplete = "email"
	}
	return Input(
		Class("form-input"),
		Type(inputType),
		Name(string(field)),
		ID(string(field)),
		Placeholder(cat.Placeholder(field)),
		Autocomplete(autocomplete),
		Value(value),
		onString("input", change),
		onString("blur", blur),
	)
}

func strengthBar(st Strength, cat *Catalog) *VNode {
	return Div(
		Class("password-strength"),
		Role("meter"),
		AriaLabel(cat.StrengthLabel(st.Tier)),
		Data("tier", st.Tier.String()),
		Div(
			Class("strength-fill", st.Tier.Class()),
			StyleAttr(fmt.Sprintf("width: %d%%", st.Width)),
		),
	)
}

// onString binds fn only when it is set, so typed nil funcs never reach
// the props.
func onString(event string, fn func(string)) any {
	if fn == nil {
		return nil
	}
	return EventHandler{Event: "on" + event, Handler: fn}
}

func onSubmit(fn func()) any {
	if fn == nil {
		return nil
	}
	return OnSubmit(fn)
}

package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Repeated Class attributes accumulate.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf adds class only when condition holds.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{}
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AttrIf returns a only when condition holds.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Form and input attributes

func Name(name string) Attr            { return attr("name", name) }
func Value(value string) Attr          { return attr("value", value) }
func Type(t string) Attr               { return attr("type", t) }
func Placeholder(text string) Attr     { return attr("placeholder", text) }
func Autocomplete(value string) Attr   { return attr("autocomplete", value) }
func AriaLabel(label string) Attr      { return attr("aria-label", label) }
func AriaInvalid(invalid bool) Attr    { return attr("aria-invalid", invalid) }
func AriaLive(mode string) Attr        { return attr("aria-live", mode) }
func Method(method string) Attr        { return attr("method", method) }
func Action(url string) Attr           { return attr("action", url) }
func Charset(charset string) Attr      { return attr("charset", charset) }
func Content(content string) Attr      { return attr("content", content) }
func Lang(lang string) Attr            { return attr("lang", lang) }
func Src(url string) Attr              { return attr("src", url) }
func Role(role string) Attr            { return attr("role", role) }

// Boolean attributes

func Disabled() Attr   { return attr("disabled", true) }
func Required() Attr   { return attr("required", true) }
func Autofocus() Attr  { return attr("autofocus", true) }
func Novalidate() Attr { return attr("novalidate", true) }
func Defer() Attr      { return attr("defer", true) }

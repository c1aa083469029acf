package render

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a": true, "b": true, "button": true, "code": true, "em": true,
	"i": true, "label": true, "small": true, "span": true, "strong": true,
	"title": true, "option": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are written as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"async":          true,
	"autofocus":      true,
	"checked":        true,
	"defer":          true,
	"disabled":       true,
	"formnovalidate": true,
	"hidden":         true,
	"multiple":       true,
	"novalidate":     true,
	"readonly":       true,
	"required":       true,
	"selected":       true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

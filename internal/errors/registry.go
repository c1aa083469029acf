package errors

import "sort"

// Template is a registered error type.
type Template struct {
	Category Category
	Message  string
}

var registry = map[string]Template{
	// Config (E100-E199)
	"E100": {CategoryConfig, "Config file not found"},
	"E101": {CategoryConfig, "Config file could not be parsed"},
	"E102": {CategoryConfig, "Invalid config value"},
	"E103": {CategoryConfig, "Config watch failed"},
	"E104": {CategoryConfig, "Unsupported locale"},

	// CLI (E200-E299)
	"E200": {CategoryCLI, "Invalid flag value"},
	"E201": {CategoryCLI, "Server failed"},
	"E202": {CategoryCLI, "Render failed"},
	"E203": {CategoryCLI, "Form is not valid"},

	// Protocol (E300-E399)
	"E300": {CategoryProtocol, "Malformed message"},
	"E301": {CategoryProtocol, "Unknown field"},
	"E302": {CategoryProtocol, "Unknown event kind"},
	"E303": {CategoryProtocol, "Submission rejected"},
	"E304": {CategoryProtocol, "Submission failed"},
}

// Codes returns every registered code in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template of code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config error", "E100", "Config file not found", CategoryConfig},
		{"cli error", "E201", "Server failed", CategoryCLI},
		{"protocol error", "E300", "Malformed message", CategoryProtocol},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestCodesMatchCategories(t *testing.T) {
	prefix := map[Category]string{
		CategoryConfig:   "E1",
		CategoryCLI:      "E2",
		CategoryProtocol: "E3",
	}
	codes := Codes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for _, code := range codes {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%s) failed", code)
		}
		if !strings.HasPrefix(code, prefix[tmpl.Category]) {
			t.Errorf("%s has category %s", code, tmpl.Category)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := New("E102").WithKey("rules.maxEmailLength").WithDetail("must be positive, got %d", 0)
	want := "E102: Invalid config value: must be positive, got 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := err.FormatCompact(); got != "rules.maxEmailLength: "+want {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapAndIs(t *testing.T) {
	cause := fmt.Errorf("open signup.json: no such file")
	err := New("E100").WithFile("signup.json").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !stderrors.Is(fmt.Errorf("load: %w", err), New("E100")) {
		t.Error("errors.Is should match by code through wrapping")
	}
	if stderrors.Is(err, New("E101")) {
		t.Error("different codes must not match")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() should include the cause: %q", err.Error())
	}
}

func TestFromErrorAndCodeOf(t *testing.T) {
	if FromError(nil, "E300") != nil {
		t.Error("nil stays nil")
	}

	plain := stderrors.New("bad json")
	wrapped := FromError(plain, "E300")
	if wrapped.Code != "E300" || !stderrors.Is(wrapped, plain) {
		t.Errorf("unexpected %+v", wrapped)
	}

	coded := New("E301")
	if FromError(fmt.Errorf("ctx: %w", coded), "E300") != coded {
		t.Error("an existing *Error is returned as is")
	}

	if CodeOf(fmt.Errorf("ctx: %w", coded)) != "E301" || CodeOf(plain) != "" {
		t.Error("CodeOf should find the first coded error")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").
		WithFile("signup.json").
		WithKey("server.port").
		WithDetail("port must be between 1 and 65535, got 70000").
		WithSuggestion("Use 8080")

	out := err.Format()
	for _, want := range []string{
		"ERROR E102: Invalid config value",
		"signup.json: server.port",
		"got 70000",
		"Hint: Use 8080",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("E301").WithKey("nickname").Wrap(stderrors.New("no such input"))

	b, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatal(jerr)
	}

	var got map[string]string
	if jerr := json.Unmarshal(b, &got); jerr != nil {
		t.Fatal(jerr)
	}
	if got["code"] != "E301" || got["category"] != "protocol" || got["key"] != "nickname" || got["detail"] != "no such input" {
		t.Errorf("unexpected JSON %s", b)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, New("E200").WithDetail("--addr is empty"))
	if !strings.Contains(buf.String(), "ERROR E200") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if len(lines) < 2 {
		t.Error("expected wrapping")
	}
}

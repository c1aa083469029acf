package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/signup/pkg/render"
	"github.com/vango-dev/signup/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string, or "" if
// rendering fails.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected.
//
//	vtest.ExpectContains(t, comp.Render(), "Passwords do not match")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain unexpected.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains attr="value".
//
//	vtest.ExpectAttribute(t, comp.Render(), "class", "strength-fill strength-strong")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectDisabled asserts whether the first element with tag is disabled.
func ExpectDisabled(t *testing.T, node *vdom.VNode, tag string, disabled bool) {
	t.Helper()
	el := vdom.FindByTag(node, tag)
	if el == nil {
		t.Fatalf("no <%s> element in tree", tag)
	}
	if got := el.HasAttr("disabled"); got != disabled {
		t.Errorf("<%s> disabled = %v, want %v", tag, got, disabled)
	}
}

// Fire calls the handler bound to event on the element named name. value
// is passed to handlers that take a string.
func Fire(t *testing.T, node *vdom.VNode, name, event, value string) {
	t.Helper()
	el := vdom.FindByName(node, name)
	if el == nil {
		t.Fatalf("no element named %q", name)
	}
	call(t, el, event, value)
}

// FireTag is Fire for the first element with tag, such as "form".
func FireTag(t *testing.T, node *vdom.VNode, tag, event string) {
	t.Helper()
	el := vdom.FindByTag(node, tag)
	if el == nil {
		t.Fatalf("no <%s> element", tag)
	}
	call(t, el, event, "")
}

func call(t *testing.T, el *vdom.VNode, event, value string) {
	t.Helper()
	switch h := el.Handler(event).(type) {
	case func(string):
		h(value)
	case func():
		h()
	case nil:
		t.Fatalf("<%s> has no %s handler", el.Tag, event)
	default:
		t.Fatalf("<%s> %s handler has unsupported type %T", el.Tag, event, h)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

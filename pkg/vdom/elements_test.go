package vdom

import "testing"

func TestCreateElementMixedArgs(t *testing.T) {
	onInput := func(string) {}
	node := Div(
		ID("main"),
		nil,
		Attr{},
		[]Attr{Name("email"), Type("email")},
		OnInput(onInput),
		Span(Text("a")),
		[]*VNode{P(), nil},
		"tail",
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("expected div element, got %s %s", node.Kind, node.Tag)
	}
	if node.Attr("id") != "main" || node.Attr("name") != "email" || node.Attr("type") != "email" {
		t.Errorf("attributes not applied: %v", node.Props)
	}
	if node.Handler("input") == nil {
		t.Error("expected oninput handler")
	}
	if len(node.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(node.Children))
	}
	if node.Children[2].Kind != KindText || node.Children[2].Text != "tail" {
		t.Errorf("string argument should become a text node")
	}
}

func TestClassAccumulates(t *testing.T) {
	node := Div(Class("a"), Class("b", "c"), ClassIf(false, "d"), ClassIf(true, "e"))
	if got := node.Attr("class"); got != "a b c e" {
		t.Errorf("expected 'a b c e', got %q", got)
	}
}

func TestKeyAttribute(t *testing.T) {
	node := Div(Key("row-1"))
	if node.Key != "row-1" {
		t.Errorf("expected key row-1, got %q", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") {
		t.Error("input is void")
	}
	if IsVoidElement("div") {
		t.Error("div is not void")
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	node := Button(OnClick(nil))
	if node.IsInteractive() {
		t.Error("nil handler should not be stored")
	}
}

package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <input>, ...
	KindText                   // escaped text
	KindFragment               // children without a wrapper
	KindComponent              // nested component
	KindRaw                    // unescaped HTML
)

// String returns the kind's name.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Key      string
	Text     string    // KindText and KindRaw
	Comp     Component // KindComponent
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive reports whether the element carries event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr is a single attribute. The zero Attr is ignored by element factories.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether this is the ignored zero attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a handler to an "on<event>" prop.
type EventHandler struct {
	Event   string
	Handler any
}

// Component is anything that renders to a VNode.
type Component interface {
	Render() *VNode
}

type funcComponent struct {
	render func() *VNode
}

func (f funcComponent) Render() *VNode {
	return f.render()
}

// Func adapts a render function to Component.
func Func(render func() *VNode) Component {
	return funcComponent{render: render}
}

// Package render turns VNode trees into HTML.
//
// Text is escaped, attributes are written in sorted order so output is
// deterministic, and event handlers are never serialized: an element that
// carries one gets a data-on-<event> marker the live client binds to.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// RenderPage wraps a body in a complete document with head, inline styles
// and scripts.
package render

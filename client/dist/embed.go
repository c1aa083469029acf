package clientdist

import _ "embed"

// SignupJS is the thin client that connects the form to its live session.
//
// It is served at "/client.js".
//go:embed signup.js
var SignupJS []byte

// SignupCSS is the form's stylesheet, inlined into the page head.
//go:embed signup.css
var SignupCSS []byte

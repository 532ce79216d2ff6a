// Package assets embeds the static web assets for the rendered map page.
package assets

import _ "embed"

// IndexTemplate is the page template; CSS, JS and data are inlined into it
// at render time so the output is a single self-contained file.
//
//go:embed index.html.tpl
var IndexTemplate []byte

// Style is the raw page stylesheet.
//
//go:embed style.css
var Style []byte

// Script is the raw map bootstrap script.
//
//go:embed script.js
var Script []byte

// Package web embeds the static submission form served at the site root.
package web

import "embed"

// FS holds the embedded static assets.
//
//go:embed index.html
var FS embed.FS

// Package web provides embedded static assets for the gateway.
package web

import "embed"

// StaticFS contains the embedded static assets (GraphiQL page).
//
//go:embed all:static
var StaticFS embed.FS

// Package web embeds the page templates and static assets served by the
// internal/web server.
package web

import "embed"

// TemplatesFS contains the layouts, pages and htmx partials.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the stylesheet.
//
//go:embed all:static
var StaticFS embed.FS

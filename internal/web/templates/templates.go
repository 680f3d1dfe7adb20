// Package templates embeds the HTML served by the web layer.
package templates

import "embed"

//go:embed base.html pages/*.html partials/*.html
var FS embed.FS

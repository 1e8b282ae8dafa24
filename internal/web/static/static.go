// Package static embeds the stylesheet served by the web UI.
package static

import "embed"

//go:embed *.css
var Files embed.FS

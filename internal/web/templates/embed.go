// Package templates holds the embedded page templates of the web UI.
package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed *.tmpl
var files embed.FS

const layout = "layout.tmpl"

// Parse parses the named page together with the shared layout.
// The result is executed by name "layout.tmpl".
func Parse(page string) (*template.Template, error) {
	return template.New(layout).Funcs(template.FuncMap{
		"nl2br":  nl2br,
		"plural": plural,
	}).ParseFS(files, layout, page)
}

// nl2br escapes s and turns line breaks into <br> tags.
func nl2br(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>\n"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

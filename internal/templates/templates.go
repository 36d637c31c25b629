package templates

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed *.html
var pagesFS embed.FS

//go:embed static
var staticFS embed.FS

// Load parses the embedded page templates for gin's HTML renderer
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(pagesFS, "*.html"))
}

// Static returns the embedded static asset filesystem rooted at static/
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}

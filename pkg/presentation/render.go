package presentation

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Render writes the html fragment of the bar's layout.
func Render(w io.Writer, bar *FilterBar) error {
	return templates.ExecuteTemplate(w, bar.Layout.String(), bar)
}

package httpapi

import (
	"embed"
	"html/template"
)

// templatesFS embeds the dashboard pages so the binary ships self-contained.
//
//go:embed templates/*.html
var templatesFS embed.FS

// parseTemplates loads every dashboard page from the embedded filesystem.
// Pages are standalone documents referenced by base name (e.g. "login.html").
func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

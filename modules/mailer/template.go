package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render produces the final HTML body for a message. Pure function, no side
// effects.
func Render(kind Kind, msg Message) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, kind.templateName(), msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

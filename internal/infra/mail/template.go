package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// render executes templates/<templateID>.html and returns its subject and body
// blocks. The subject is plain text; the body is HTML-escaped.
func render(templateID string, params TemplateParams) (subject, body string, err error) {
	path := "templates/" + templateID + ".html"

	st, err := texttemplate.ParseFS(templateFS, path)
	if err != nil {
		return "", "", fmt.Errorf("unknown email template %q: %w", templateID, err)
	}
	bt, err := htmltemplate.ParseFS(templateFS, path)
	if err != nil {
		return "", "", fmt.Errorf("unknown email template %q: %w", templateID, err)
	}

	var subj, html bytes.Buffer
	if err := st.ExecuteTemplate(&subj, "subject", params); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := bt.ExecuteTemplate(&html, "body", params); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}

	return strings.TrimSpace(subj.String()), html.String(), nil
}

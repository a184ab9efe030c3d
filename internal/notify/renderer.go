package notify

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer renders the small text templates used for owner emails.
type Renderer struct{}

// Render compiles the provided template text with strict missing-key semantics.
func (Renderer) Render(name, tmpl string, data any) (string, error) {
	if tmpl == "" {
		return "", fmt.Errorf("notify: template text required")
	}
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("notify: parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: execute template: %w", err)
	}
	return buf.String(), nil
}

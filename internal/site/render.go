package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/wolfman30/paramount-detail-site/internal/content"
)

var funcs = template.FuncMap{
	"money": content.FormatMoney,
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(funcs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("site: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page. The page is buffered so a template error
// never produces a half-written response.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("site: render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

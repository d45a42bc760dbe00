package render

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/outline"
)

//go:embed templates/document.md.tmpl
var defaultMarkdownTemplate string

// MarkdownRenderer substitutes the document's flat context into a Go
// template with sprig functions available.
type MarkdownRenderer struct {
	// Template replaces the built-in template text when non-empty.
	Template string

	dec outline.Decomposer
}

func (r *MarkdownRenderer) Render(w io.Writer, doc *document.Document) error {
	ctx, err := doc.Context(r.dec)
	if err != nil {
		return err
	}

	text := r.Template
	if text == "" {
		text = defaultMarkdownTemplate
	}
	tmpl, err := template.New("document").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("render: parse template: %w", err)
	}
	if err := tmpl.Execute(w, ctx); err != nil {
		return fmt.Errorf("render: execute template: %w", err)
	}
	return nil
}

package render

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sopforge/sopforge/internal/document"
)

// HTMLRenderer renders the markdown form and converts it to a standalone
// HTML page with goldmark.
type HTMLRenderer struct {
	markdown MarkdownRenderer
}

func (r *HTMLRenderer) Render(w io.Writer, doc *document.Document) error {
	var md bytes.Buffer
	if err := r.markdown.Render(&md, doc); err != nil {
		return err
	}

	var body bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := gm.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("render: convert markdown: %w", err)
	}

	if _, err := fmt.Fprintf(w, htmlPage, html.EscapeString(doc.Title), body.String()); err != nil {
		return fmt.Errorf("render: write html: %w", err)
	}
	return nil
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 50rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
%s</body>
</html>
`

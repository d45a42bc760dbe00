// Package render turns a decoded document into an output artifact.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/outline"
)

// Renderer writes a document in one output format.
type Renderer interface {
	Render(w io.Writer, doc *document.Document) error
}

// SupportedFormats lists output formats this tool can produce.
var SupportedFormats = map[string]bool{
	"markdown": true,
	"md":       true,
	"html":     true,
	"text":     true,
	"txt":      true,
	"docx":     true,
}

// Options tweak renderer construction.
type Options struct {
	// Template overrides the built-in markdown template text.
	Template string
}

// LoadTemplate reads a markdown template override file. An empty path
// selects the built-in template.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("render: read template %s: %w", path, err)
	}
	return string(raw), nil
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string, dec outline.Decomposer, opts Options) (Renderer, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return &MarkdownRenderer{Template: opts.Template, dec: dec}, nil
	case "html":
		return &HTMLRenderer{markdown: MarkdownRenderer{Template: opts.Template, dec: dec}}, nil
	case "text", "txt":
		return &TextRenderer{dec: dec}, nil
	case "docx":
		return &DocxRenderer{dec: dec}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension for a format name.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return ".md"
	case "html":
		return ".html"
	case "text", "txt":
		return ".txt"
	case "docx":
		return ".docx"
	default:
		return ""
	}
}

// ContentType returns the media type for a format name.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return "text/markdown; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "text", "txt":
		return "text/plain; charset=utf-8"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

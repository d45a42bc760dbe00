// Package importer ingests existing documents and drafts YAML skeletons
// from them, so that migrating a legacy SOP starts from its real content
// instead of a blank file.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Importer recovers a Draft outline from raw document bytes.
type Importer interface {
	Import(r io.Reader, filename string) (*Draft, error)
}

// SupportedExtensions lists file extensions this tool can import.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextImporter{}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	case ".pdf":
		return &PDFImporter{FallbackPdftotext: true}, nil
	case ".docx":
		return &DocxImporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

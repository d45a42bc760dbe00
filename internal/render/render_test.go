package render

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/outline"
)

const sampleYAML = `
type: STANDARD OPERATING PROCEDURE
document_no: SOP-014
document_code: QA-SOP
effective_date: 2026-02-01
document_rev: "01"
title: Filter Replacement
revision_history:
  - revision_no: "01"
    description_of_changes: Initial release
    effective_date: 2026-02-01
prepared_by:
  - name: A. Author
    title: Engineer
reviewed_approved_by:
  - name: B. Approver
    title: Manager
purpose:
  - Describe filter replacement.
scope:
  - All HVAC units.
responsibility:
  - Maintenance staff.
definition:
  - "HVAC: heating, ventilation, air conditioning"
reference:
  - Manual M-100
attachment:
  - N/A
procedure:
  remove_old_filter:
    - Power down the unit
    - safety:
        - Lock out the breaker
        - Tag the panel
  install_new_filter:
    - Insert with airflow arrow up
`

func testDecomposer() outline.Decomposer {
	return outline.New(slog.New(slog.DiscardHandler))
}

func sampleDoc(t *testing.T) *document.Document {
	t.Helper()
	root, err := loader.Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, err := document.FromTree(root)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestForFormat(t *testing.T) {
	dec := testDecomposer()

	for _, format := range []string{"markdown", "md", "html", "text", "txt", "docx"} {
		if _, err := ForFormat(format, dec, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", format, err)
		}
	}
	if _, err := ForFormat("epub", dec, Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoadTemplate(t *testing.T) {
	got, err := LoadTemplate("")
	if err != nil {
		t.Fatalf("unexpected error for empty path: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text for empty path, got %q", got)
	}

	path := filepath.Join(t.TempDir(), "custom.md.tmpl")
	if err := os.WriteFile(path, []byte("TITLE={{ .title }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	got, err = LoadTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "TITLE={{ .title }}" {
		t.Errorf("expected file contents, got %q", got)
	}

	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtensionAndContentType(t *testing.T) {
	if got := Extension("markdown"); got != ".md" {
		t.Errorf("expected .md, got %q", got)
	}
	if got := Extension("DOCX"); got != ".docx" {
		t.Errorf("expected .docx, got %q", got)
	}
	if got := ContentType("html"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("unexpected content type %q", got)
	}
	if got := ContentType("unknown"); got != "application/octet-stream" {
		t.Errorf("unexpected fallback content type %q", got)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r, err := ForFormat("markdown", testDecomposer(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Filter Replacement",
		"Doc No. SOP-014",
		"| 01 | Initial release | 2026-02-01 |",
		"- A. Author — Engineer",
		"## 5.0 Procedure",
		"### 5.1 Remove Old Filter",
		"- Power down the unit",
		"- safety",
		"  - Lock out the breaker",
		"### 5.2 Install New Filter",
		"## 7.0 Attachment",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\noutput:\n%s", want, out)
		}
	}
}

func TestMarkdownRenderer_CustomTemplate(t *testing.T) {
	r, err := ForFormat("markdown", testDecomposer(), Options{
		Template: "TITLE={{ .title | upper }}",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "TITLE=FILTER REPLACEMENT" {
		t.Errorf("expected custom template output, got %q", got)
	}
}

func TestMarkdownRenderer_BadTemplate(t *testing.T) {
	r, _ := ForFormat("markdown", testDecomposer(), Options{Template: "{{ .title"})
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err == nil {
		t.Error("expected parse error for malformed template")
	}
}

func TestHTMLRenderer(t *testing.T) {
	r, err := ForFormat("html", testDecomposer(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Filter Replacement</title>",
		"<h1>Filter Replacement</h1>",
		"<table>",
		"<li>Power down the unit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestTextRenderer(t *testing.T) {
	r, err := ForFormat("text", testDecomposer(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Filter Replacement\n==================",
		"1.0 Purpose",
		"5.1 remove old filter",
		"    - safety",
		"        - Lock out the breaker",
		"7.0 Attachment",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\noutput:\n%s", want, out)
		}
	}
}

func TestDocxRenderer_ProducesArchive(t *testing.T) {
	r, err := ForFormat("docx", testDecomposer(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDoc(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
	// A docx file is a zip archive: check the magic bytes.
	if buf.Len() < 4 || !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("expected zip archive output, got %d bytes starting %q", buf.Len(), buf.Bytes()[:min(4, buf.Len())])
	}
}

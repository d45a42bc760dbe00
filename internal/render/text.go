package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/outline"
	"github.com/sopforge/sopforge/internal/tree"
)

// TextRenderer writes a plain-text rendition for terminals and diffs.
type TextRenderer struct {
	dec outline.Decomposer
}

func (r *TextRenderer) Render(w io.Writer, doc *document.Document) error {
	var b strings.Builder

	b.WriteString(doc.Title + "\n")
	b.WriteString(strings.Repeat("=", len(doc.Title)) + "\n\n")
	fmt.Fprintf(&b, "%s | Doc No. %s | Rev. %s | Effective: %s\n", doc.Type, doc.DocumentNo, doc.DocumentRev, doc.EffectiveDate)
	fmt.Fprintf(&b, "Document Code: %s\n\n", doc.DocumentCode)

	if len(doc.RevisionHistory) > 0 {
		b.WriteString("Revision History\n")
		for _, rev := range doc.RevisionHistory {
			fmt.Fprintf(&b, "  %s  %s  (%s)\n", rev.RevisionNo, rev.DescriptionOfChanges, rev.EffectiveDate)
		}
		b.WriteString("\n")
	}
	writeSignoffs(&b, "Prepared By", doc.PreparedBy)
	writeSignoffs(&b, "Reviewed and Approved By", doc.ReviewedApprovedBy)

	writeBody(&b, "1.0 Purpose", doc.Purpose)
	writeBody(&b, "2.0 Scope", doc.Scope)
	writeBody(&b, "3.0 Responsibility", doc.Responsibility)
	writeBody(&b, "4.0 Definition", doc.Definition)

	b.WriteString("5.0 Procedure\n")
	for i, sec := range doc.Procedure {
		fmt.Fprintf(&b, "  5.%d %s\n", i+1, strings.ReplaceAll(sec.Name, "_", " "))
		elems, err := r.dec.Elements(sec.Content)
		if err != nil {
			return fmt.Errorf("render: procedure section %q: %w", sec.Name, err)
		}
		for _, el := range elems {
			fmt.Fprintf(&b, "    - %s\n", el.Label)
			for _, it := range el.Items {
				fmt.Fprintf(&b, "        - %s\n", itemText(it))
			}
		}
	}
	b.WriteString("\n")

	writeBody(&b, "6.0 Reference", doc.Reference)
	writeBody(&b, "7.0 Attachment", doc.Attachment)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSignoffs(b *strings.Builder, heading string, sigs []document.Signoff) {
	if len(sigs) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, s := range sigs {
		fmt.Fprintf(b, "  %s — %s", s.Name, s.Title)
		if s.Date != "" {
			fmt.Fprintf(b, " (%s)", s.Date)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeBody(b *strings.Builder, heading string, lines []string) {
	b.WriteString(heading + "\n")
	for _, line := range lines {
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("\n")
}

func itemText(n *tree.Node) string {
	if s, ok := n.StringValue(); ok {
		return s
	}
	return fmt.Sprint(n.ToGo())
}

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/outline"
)

// Font sizes in half-points, the unit go-docx expects.
const (
	sizeTitle   = "36"
	sizeHeading = "28"
	sizeBody    = "22"
)

// DocxRenderer builds a Word document programmatically.
type DocxRenderer struct {
	dec outline.Decomposer
}

func (r *DocxRenderer) Render(w io.Writer, doc *document.Document) error {
	d := docx.New().WithDefaultTheme()

	d.AddParagraph().Justification("center").AddText(doc.Title).Size(sizeTitle)
	d.AddParagraph().Justification("center").AddText(
		fmt.Sprintf("%s | Doc No. %s | Rev. %s | Effective: %s", doc.Type, doc.DocumentNo, doc.DocumentRev, doc.EffectiveDate),
	).Size(sizeBody)
	d.AddParagraph().Justification("center").AddText("Document Code: " + doc.DocumentCode).Size(sizeBody)
	d.AddParagraph()

	if len(doc.RevisionHistory) > 0 {
		d.AddParagraph().AddText("Revision History").Size(sizeHeading)
		for _, rev := range doc.RevisionHistory {
			d.AddParagraph().AddText(
				fmt.Sprintf("%s — %s (%s)", rev.RevisionNo, rev.DescriptionOfChanges, rev.EffectiveDate),
			).Size(sizeBody)
		}
		d.AddParagraph()
	}

	r.signoffBlock(d, "Prepared By", doc.PreparedBy)
	r.signoffBlock(d, "Reviewed and Approved By", doc.ReviewedApprovedBy)

	r.bodySection(d, "1.0 Purpose", doc.Purpose)
	r.bodySection(d, "2.0 Scope", doc.Scope)
	r.bodySection(d, "3.0 Responsibility", doc.Responsibility)
	r.bodySection(d, "4.0 Definition", doc.Definition)

	d.AddParagraph().AddText("5.0 Procedure").Size(sizeHeading)
	for i, sec := range doc.Procedure {
		name := strings.ReplaceAll(sec.Name, "_", " ")
		d.AddParagraph().AddText(fmt.Sprintf("5.%d %s", i+1, name)).Size(sizeHeading)
		elems, err := r.dec.Elements(sec.Content)
		if err != nil {
			return fmt.Errorf("render: procedure section %q: %w", sec.Name, err)
		}
		for _, el := range elems {
			d.AddParagraph().AddText("• " + el.Label).Size(sizeBody)
			for _, it := range el.Items {
				d.AddParagraph().AddText("    ◦ " + itemText(it)).Size(sizeBody)
			}
		}
	}
	d.AddParagraph()

	r.bodySection(d, "6.0 Reference", doc.Reference)
	r.bodySection(d, "7.0 Attachment", doc.Attachment)

	if _, err := d.WriteTo(w); err != nil {
		return fmt.Errorf("render: write docx: %w", err)
	}
	return nil
}

func (r *DocxRenderer) signoffBlock(d *docx.Docx, heading string, sigs []document.Signoff) {
	if len(sigs) == 0 {
		return
	}
	d.AddParagraph().AddText(heading).Size(sizeHeading)
	for _, s := range sigs {
		line := fmt.Sprintf("%s — %s", s.Name, s.Title)
		if s.Date != "" {
			line += fmt.Sprintf(" (%s)", s.Date)
		}
		d.AddParagraph().AddText(line).Size(sizeBody)
	}
	d.AddParagraph()
}

func (r *DocxRenderer) bodySection(d *docx.Docx, heading string, lines []string) {
	d.AddParagraph().AddText(heading).Size(sizeHeading)
	for _, line := range lines {
		d.AddParagraph().AddText(line).Size(sizeBody)
	}
	d.AddParagraph()
}

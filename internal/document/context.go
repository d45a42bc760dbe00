package document

import (
	"fmt"

	"github.com/sopforge/sopforge/internal/outline"
	"github.com/sopforge/sopforge/internal/tree"
)

// Context flattens the document into named values for template
// substitution, mirroring the layout the legacy filler produced: common
// header/footer and control items plus, per procedure section, the
// decomposed outline.
//
// Each procedure entry carries both the legacy collapsed pair ("labels" and
// "groups", not positionally aligned when plain strings and groupings
// interleave) and the aligned "elements" view for renderers that nest
// sub-items under their labels.
func (d *Document) Context(dec outline.Decomposer) (map[string]any, error) {
	ctx := map[string]any{
		// Document header and footer items.
		"type":           d.Type,
		"document_no":    d.DocumentNo,
		"document_code":  d.DocumentCode,
		"effective_date": d.EffectiveDate,
		"document_rev":   d.DocumentRev,
		"title":          d.Title,

		// Document control items.
		"revision_history":     revisionMaps(d.RevisionHistory),
		"prepared_by":          signoffMaps(d.PreparedBy),
		"reviewed_approved_by": signoffMaps(d.ReviewedApprovedBy),

		// Document body items.
		"purpose":        stringsOrEmpty(d.Purpose),
		"scope":          stringsOrEmpty(d.Scope),
		"responsibility": stringsOrEmpty(d.Responsibility),
		"definition":     stringsOrEmpty(d.Definition),
		"reference":      stringsOrEmpty(d.Reference),
		"attachment":     stringsOrEmpty(d.Attachment),
	}

	sections := make([]map[string]any, 0, len(d.Procedure))
	for _, sec := range d.Procedure {
		dc, err := dec.Decompose(sec.Content)
		if err != nil {
			return nil, fmt.Errorf("document: procedure section %q: %w", sec.Name, err)
		}
		elems, err := dec.Elements(sec.Content)
		if err != nil {
			return nil, fmt.Errorf("document: procedure section %q: %w", sec.Name, err)
		}

		entry := map[string]any{
			"name":       sec.Name,
			"labels":     dc.Labels.Flatten(),
			"has_groups": dc.HasGroups,
			"elements":   elementMaps(elems),
		}
		if dc.HasGroups {
			entry["groups"] = flattenGroups(dc.Groups)
		}
		sections = append(sections, entry)
	}
	ctx["procedure"] = sections

	return ctx, nil
}

func elementMaps(elems []outline.Element) []map[string]any {
	out := make([]map[string]any, 0, len(elems))
	for _, el := range elems {
		m := map[string]any{
			"label":    el.Label,
			"grouping": el.Grouping,
		}
		items := make([]any, 0, len(el.Items))
		for _, it := range el.Items {
			items = append(items, it.ToGo())
		}
		m["items"] = items
		out = append(out, m)
	}
	return out
}

// flattenGroups converts the grouped-value projection to plain Go values,
// keeping the legacy collapsing: a single group is the bare item list.
func flattenGroups(groups outline.OneOrMany[[]*tree.Node]) any {
	if items, ok := groups.Single(); ok {
		return itemsToGo(items)
	}
	out := make([]any, 0, groups.Len())
	for _, items := range groups.Values() {
		out = append(out, itemsToGo(items))
	}
	return out
}

func itemsToGo(items []*tree.Node) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToGo())
	}
	return out
}

func revisionMaps(revs []Revision) []map[string]string {
	out := make([]map[string]string, 0, len(revs))
	for _, r := range revs {
		out = append(out, map[string]string{
			"revision_no":            r.RevisionNo,
			"description_of_changes": r.DescriptionOfChanges,
			"effective_date":         r.EffectiveDate,
		})
	}
	return out
}

func signoffMaps(sigs []Signoff) []map[string]string {
	out := make([]map[string]string, 0, len(sigs))
	for _, s := range sigs {
		out = append(out, map[string]string{
			"name":  s.Name,
			"title": s.Title,
			"date":  s.Date,
		})
	}
	return out
}

func stringsOrEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

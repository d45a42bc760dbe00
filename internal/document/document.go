// Package document models a controlled document: header/footer metadata,
// revision history, review/approval lists, the fixed numbered body
// sections, and the free-form procedure outline.
package document

import (
	"fmt"

	"github.com/sopforge/sopforge/internal/tree"
)

// Document is the typed view of a controlled-document tree.
type Document struct {
	// Header and footer items.
	Type          string
	DocumentNo    string
	DocumentCode  string
	EffectiveDate string
	DocumentRev   string
	Title         string

	// Document control items.
	RevisionHistory    []Revision
	PreparedBy         []Signoff
	ReviewedApprovedBy []Signoff

	// Body items 1.0–4.0, 6.0, 7.0.
	Purpose        []string
	Scope          []string
	Responsibility []string
	Definition     []string
	Reference      []string
	Attachment     []string

	// Procedure (5.0): named sections of free-form outline content. This is
	// the only part of the document without a fixed schema.
	Procedure []Section
}

// Revision is one row of the revision history table.
type Revision struct {
	RevisionNo           string
	DescriptionOfChanges string
	EffectiveDate        string
}

// Signoff is one entry of a prepared-by or reviewed-and-approved-by list.
type Signoff struct {
	Name  string
	Title string
	Date  string // optional
}

// Section is one named procedure section. Content keeps the raw outline
// shape; the outline package decomposes it at render time.
type Section struct {
	Name    string
	Content *tree.Node
}

// FromTree decodes a normalized document tree. Missing fields decode to
// zero values; Validate decides what is actually required.
func FromTree(root *tree.Node) (*Document, error) {
	if root == nil || root.Kind != tree.Mapping {
		return nil, fmt.Errorf("document: top level must be a mapping")
	}

	d := &Document{
		Type:          stringField(root, "type"),
		DocumentNo:    stringField(root, "document_no"),
		DocumentCode:  stringField(root, "document_code"),
		EffectiveDate: stringField(root, "effective_date"),
		DocumentRev:   stringField(root, "document_rev"),
		Title:         stringField(root, "title"),

		Purpose:        stringList(root, "purpose"),
		Scope:          stringList(root, "scope"),
		Responsibility: stringList(root, "responsibility"),
		Definition:     stringList(root, "definition"),
		Reference:      stringList(root, "reference"),
		Attachment:     stringList(root, "attachment"),
	}

	if rev, ok := root.Lookup("revision_history"); ok {
		d.RevisionHistory = revisions(rev)
	}
	if by, ok := root.Lookup("prepared_by"); ok {
		d.PreparedBy = signoffs(by)
	}
	if by, ok := root.Lookup("reviewed_approved_by"); ok {
		d.ReviewedApprovedBy = signoffs(by)
	}

	if proc, ok := root.Lookup("procedure"); ok {
		sections, err := procedureSections(proc)
		if err != nil {
			return nil, err
		}
		d.Procedure = sections
	}

	return d, nil
}

// procedureSections reads the procedure mapping in order. A sequence of
// single-key mappings is accepted as the same thing written list-style.
func procedureSections(n *tree.Node) ([]Section, error) {
	switch n.Kind {
	case tree.Mapping:
		out := make([]Section, 0, len(n.Entries))
		for _, e := range n.Entries {
			name, ok := e.Key.StringValue()
			if !ok {
				return nil, fmt.Errorf("document: procedure section name must be a string")
			}
			out = append(out, Section{Name: name, Content: e.Value})
		}
		return out, nil
	case tree.Sequence:
		out := make([]Section, 0, len(n.Items))
		for i, it := range n.Items {
			if it == nil || it.Kind != tree.Mapping || len(it.Entries) == 0 {
				return nil, fmt.Errorf("document: procedure entry %d is not a named section", i)
			}
			name, ok := it.Entries[0].Key.StringValue()
			if !ok {
				return nil, fmt.Errorf("document: procedure entry %d has a non-string name", i)
			}
			out = append(out, Section{Name: name, Content: it.Entries[0].Value})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("document: procedure must be a mapping of named sections")
	}
}

func stringField(m *tree.Node, key string) string {
	v, ok := m.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := v.StringValue()
	return s
}

// stringList accepts both a sequence of strings and a bare string, since
// authors write single-entry sections either way.
func stringList(m *tree.Node, key string) []string {
	v, ok := m.Lookup(key)
	if !ok {
		return nil
	}
	return v.Strings()
}

func revisions(n *tree.Node) []Revision {
	if n == nil || n.Kind != tree.Sequence {
		return nil
	}
	out := make([]Revision, 0, len(n.Items))
	for _, it := range n.Items {
		out = append(out, Revision{
			RevisionNo:           stringField(it, "revision_no"),
			DescriptionOfChanges: stringField(it, "description_of_changes"),
			EffectiveDate:        stringField(it, "effective_date"),
		})
	}
	return out
}

func signoffs(n *tree.Node) []Signoff {
	if n == nil || n.Kind != tree.Sequence {
		return nil
	}
	out := make([]Signoff, 0, len(n.Items))
	for _, it := range n.Items {
		out = append(out, Signoff{
			Name:  stringField(it, "name"),
			Title: stringField(it, "title"),
			Date:  stringField(it, "date"),
		})
	}
	return out
}

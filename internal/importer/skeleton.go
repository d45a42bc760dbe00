package importer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/tree"
)

// Skeleton builds a starter document tree from a draft. Header fields get
// placeholder values the author must replace; the draft's sections become
// procedure sections whose content uses the mixed outline shape (plain
// items interleaved with child-heading groupings).
func Skeleton(d *Draft) *tree.Node {
	title := d.Title
	if title == "" {
		title = "Imported Document"
	}

	return tree.MapOf(
		tree.EntryOf("type", tree.ScalarOf("STANDARD OPERATING PROCEDURE")),
		tree.EntryOf("document_no", tree.ScalarOf("TBD-000")),
		tree.EntryOf("document_code", tree.ScalarOf("TBD-000-00")),
		tree.EntryOf("effective_date", tree.ScalarOf("TBD")),
		tree.EntryOf("document_rev", tree.ScalarOf("00")),
		tree.EntryOf("title", tree.ScalarOf(title)),
		tree.EntryOf("revision_history", tree.SeqOf(
			tree.MapOf(
				tree.EntryOf("revision_no", tree.ScalarOf("00")),
				tree.EntryOf("description_of_changes", tree.ScalarOf("Initial release")),
				tree.EntryOf("effective_date", tree.ScalarOf("TBD")),
			),
		)),
		tree.EntryOf("prepared_by", tree.SeqOf(
			tree.MapOf(
				tree.EntryOf("name", tree.ScalarOf("TBD")),
				tree.EntryOf("title", tree.ScalarOf("Preparer")),
			),
		)),
		tree.EntryOf("reviewed_approved_by", tree.SeqOf(
			tree.MapOf(
				tree.EntryOf("name", tree.ScalarOf("TBD")),
				tree.EntryOf("title", tree.ScalarOf("Approver")),
			),
		)),
		tree.EntryOf("purpose", tree.SeqOf(tree.ScalarOf("TBD"))),
		tree.EntryOf("scope", tree.SeqOf(tree.ScalarOf("TBD"))),
		tree.EntryOf("responsibility", tree.SeqOf(tree.ScalarOf("TBD"))),
		tree.EntryOf("definition", tree.SeqOf(tree.ScalarOf("TBD"))),
		tree.EntryOf("procedure", procedureTree(d.Sections)),
		tree.EntryOf("reference", tree.SeqOf(tree.ScalarOf("N/A"))),
		tree.EntryOf("attachment", tree.SeqOf(tree.ScalarOf("N/A"))),
	)
}

// procedureTree maps draft sections onto procedure outline content: a
// section's own items become plain strings, each child becomes a
// heading→items grouping, and deeper levels fold into their parent group.
func procedureTree(sections []*DraftSection) *tree.Node {
	entries := make([]tree.Entry, 0, len(sections))
	for i, sec := range sections {
		name := document.Slugify(sec.Heading)
		if name == "" {
			name = fmt.Sprintf("section_%d", i+1)
		}
		entries = append(entries, tree.EntryOf(name, sectionContent(sec)))
	}
	return tree.MapOf(entries...)
}

func sectionContent(sec *DraftSection) *tree.Node {
	var items []*tree.Node
	for _, it := range sec.Items {
		items = append(items, tree.ScalarOf(it))
	}
	for _, child := range sec.Children {
		items = append(items, tree.MapOf(
			tree.EntryOf(child.Heading, tree.SeqOf(flattenItems(child)...)),
		))
	}
	return tree.SeqOf(items...)
}

// flattenItems collects a subsection's items and those of all deeper
// levels; the outline format has only two levels below a section name.
func flattenItems(sec *DraftSection) []*tree.Node {
	var out []*tree.Node
	for _, it := range sec.Items {
		out = append(out, tree.ScalarOf(it))
	}
	for _, child := range sec.Children {
		if child.Heading != "" {
			out = append(out, tree.ScalarOf(child.Heading))
		}
		out = append(out, flattenItems(child)...)
	}
	return out
}

// MarshalSkeleton serializes a draft's skeleton to YAML, preserving the
// section order the source document had.
func MarshalSkeleton(d *Draft) ([]byte, error) {
	node := loader.ToYAML(Skeleton(d))
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("importer: marshal skeleton: %w", err)
	}
	return out, nil
}

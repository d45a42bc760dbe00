package importer

import "strings"

// Draft is a rough outline recovered from an existing document. It feeds
// the skeleton generator; nothing renders a Draft directly.
type Draft struct {
	Title    string
	Sections []*DraftSection
}

// DraftSection is a heading with the prose under it, segmented into
// outline-sized items, plus its subsections.
type DraftSection struct {
	Heading  string
	Items    []string
	Children []*DraftSection
}

// sectionBuilder turns a linear stream of headings and prose blocks into a
// heading-nested section tree. Importers feed it in document order.
type sectionBuilder struct {
	root  *DraftSection
	stack []builderEntry
	prose strings.Builder
}

type builderEntry struct {
	section *DraftSection
	level   int
}

func newSectionBuilder() *sectionBuilder {
	root := &DraftSection{}
	return &sectionBuilder{
		root:  root,
		stack: []builderEntry{{section: root, level: 0}},
	}
}

// Heading closes the current prose block and opens a section at the given
// level, nesting under the nearest shallower heading.
func (b *sectionBuilder) Heading(level int, title string) {
	b.flush()
	section := &DraftSection{Heading: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].section
	parent.Children = append(parent.Children, section)
	b.stack = append(b.stack, builderEntry{section: section, level: level})
}

// Prose appends a block of text to the current section.
func (b *sectionBuilder) Prose(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.prose.Len() > 0 {
		b.prose.WriteString("\n\n")
	}
	b.prose.WriteString(text)
}

func (b *sectionBuilder) flush() {
	text := strings.TrimSpace(b.prose.String())
	b.prose.Reset()
	if text == "" {
		return
	}
	top := b.stack[len(b.stack)-1].section
	top.Items = append(top.Items, Items(text)...)
}

// Draft finalizes the build. Prose that never saw a heading becomes a
// single untitled section.
func (b *sectionBuilder) Draft(title string) *Draft {
	b.flush()
	sections := b.root.Children
	if len(sections) == 0 && len(b.root.Items) > 0 {
		sections = []*DraftSection{{Items: b.root.Items}}
	}
	return &Draft{Title: title, Sections: sections}
}

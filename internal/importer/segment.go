package importer

import "strings"

// maxItemChars is the point past which a paragraph is split into sentences
// rather than imported as one outline item.
const maxItemChars = 300

// Items splits section prose into outline-sized items: paragraphs first,
// then sentences for paragraphs too long to read as a single step.
func Items(text string) []string {
	var out []string
	for _, para := range Paragraphs(text) {
		if len(para) <= maxItemChars {
			out = append(out, para)
			continue
		}
		out = append(out, sentences(para)...)
	}
	return out
}

// Paragraphs splits on blank lines, dropping empty blocks.
func Paragraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentences does basic sentence splitting on terminal punctuation followed
// by a space.
func sentences(text string) []string {
	var out []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

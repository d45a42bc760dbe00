package importer

import (
	"bufio"
	"io"
	"strings"
)

// TextImporter handles plain text files.
type TextImporter struct{}

func (p *TextImporter) Import(r io.Reader, filename string) (*Draft, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := newSectionBuilder()
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				b.Prose(current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		b.Prose(current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.Draft(strings.TrimSuffix(filename, ".txt")), nil
}

package document

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTitleLen = 200

// Validate checks the fields every controlled document must carry before
// rendering. Free-form procedure content is deliberately not validated
// here; the outline decomposer degrades per element instead.
func (d *Document) Validate() error {
	var problems []string

	required := []struct {
		name, value string
	}{
		{"type", d.Type},
		{"document_no", d.DocumentNo},
		{"document_code", d.DocumentCode},
		{"effective_date", d.EffectiveDate},
		{"document_rev", d.DocumentRev},
		{"title", d.Title},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if len(d.Title) > maxTitleLen {
		problems = append(problems, fmt.Sprintf("title exceeds %d characters", maxTitleLen))
	}

	for i, rev := range d.RevisionHistory {
		if strings.TrimSpace(rev.RevisionNo) == "" {
			problems = append(problems, fmt.Sprintf("revision_history[%d] is missing revision_no", i))
		}
	}
	for i, s := range d.PreparedBy {
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, fmt.Sprintf("prepared_by[%d] is missing name", i))
		}
	}
	for i, s := range d.ReviewedApprovedBy {
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, fmt.Sprintf("reviewed_approved_by[%d] is missing name", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("document: %s", strings.Join(problems, "; "))
	}
	return nil
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a filename-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

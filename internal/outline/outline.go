// Package outline decomposes heterogeneous outline lists: sequences whose
// elements are interchangeably plain strings and single-key label→sub-items
// groupings. It produces two schema-free views, the ordered labels and the
// ordered grouped sub-content, matching the projections the legacy filler
// fed into its document templates.
package outline

import (
	"fmt"
	"log/slog"

	"github.com/sopforge/sopforge/internal/tree"
)

// SentinelLabel stands in for any outline element that is neither a string
// nor a grouping. Substituting it keeps a malformed entry from aborting the
// whole document; the literal is part of the legacy contract.
const SentinelLabel = "error here"

// Decomposer extracts labels and grouped values from outline content. Both
// operations are stateless single passes; the zero value works with the
// default string rule and no diagnostics.
type Decomposer struct {
	Rule tree.Rule // applied to plain-string labels; defaults to TrimTrailingNewlines
	Log  *slog.Logger
}

// New returns a decomposer with the default label rule.
func New(log *slog.Logger) Decomposer {
	return Decomposer{Rule: tree.TrimTrailingNewlines, Log: log}
}

// Labels projects outline content onto its ordered label sequence. A
// mapping input is first reduced to the sequence of its values. Each
// element contributes one label: plain strings are normalized, groupings
// contribute their first key, and anything else contributes SentinelLabel.
// A single label collapses to One.
//
// The only returned error is a usage error: content that is neither a
// sequence nor a mapping.
func (d Decomposer) Labels(content *tree.Node) (OneOrMany[string], error) {
	elems, err := labelElements(content)
	if err != nil {
		return OneOrMany[string]{}, err
	}
	labels := make([]string, 0, len(elems))
	for i, el := range elems {
		labels = append(labels, d.labelOf(i, el))
	}
	return Collapse(labels), nil
}

func (d Decomposer) labelOf(i int, el *tree.Node) string {
	if el == nil {
		d.notice("outline element is empty, substituting sentinel", "index", i)
		return SentinelLabel
	}
	switch el.Kind {
	case tree.Mapping:
		if len(el.Entries) == 0 {
			d.notice("grouping has no keys, substituting sentinel", "index", i)
			return SentinelLabel
		}
		if len(el.Entries) > 1 {
			d.warnMultiKey(i, el)
		}
		key := el.Entries[0].Key
		if s, ok := key.StringValue(); ok {
			return s
		}
		if key != nil && key.Kind == tree.Scalar {
			return fmt.Sprint(key.Value)
		}
		d.notice("grouping key is not a scalar, substituting sentinel", "index", i)
		return SentinelLabel
	case tree.Scalar:
		if s, ok := el.StringValue(); ok {
			return d.rule()(s)
		}
	}
	d.notice("outline element is neither string nor grouping, substituting sentinel", "index", i)
	return SentinelLabel
}

// GroupedValues projects outline content onto its ordered grouped
// sub-content. Only grouping elements contribute: each yields the sequence
// under its first key as one group, in original relative order. Plain
// strings are skipped entirely, which is why this view does not line up
// positionally with Labels when the two element kinds interleave.
//
// found is false when the content holds no groupings at all: structural
// absence, distinct from a present-but-empty group. A single group
// collapses to One (the group's items, unwrapped).
func (d Decomposer) GroupedValues(content *tree.Node) (OneOrMany[[]*tree.Node], bool, error) {
	elems, err := groupElements(content)
	if err != nil {
		return OneOrMany[[]*tree.Node]{}, false, err
	}
	var groups [][]*tree.Node
	for i, el := range elems {
		if el == nil || el.Kind != tree.Mapping {
			continue
		}
		if len(el.Entries) == 0 {
			d.notice("grouping has no keys, skipping", "index", i)
			continue
		}
		if len(el.Entries) > 1 {
			d.warnMultiKey(i, el)
		}
		groups = append(groups, groupItems(el.Entries[0].Value))
	}
	if len(groups) == 0 {
		d.notice("no groupings found in outline content")
		return Many[[]*tree.Node](nil), false, nil
	}
	return Collapse(groups), true, nil
}

// Decomposition is the combined snapshot of both projections. Labels has
// one entry per outline element while Groups has one per grouping only, so
// index i of one does not correspond to index i of the other when plain
// strings and groupings interleave. That misalignment is a structural
// property of the legacy contract, preserved deliberately; use Elements
// for an aligned view.
type Decomposition struct {
	Labels    OneOrMany[string]
	Groups    OneOrMany[[]*tree.Node]
	HasGroups bool
}

// Decompose runs both projections over the same content.
func (d Decomposer) Decompose(content *tree.Node) (Decomposition, error) {
	labels, err := d.Labels(content)
	if err != nil {
		return Decomposition{}, err
	}
	groups, found, err := d.GroupedValues(content)
	if err != nil {
		return Decomposition{}, err
	}
	return Decomposition{Labels: labels, Groups: groups, HasGroups: found}, nil
}

// Element is one outline entry in the aligned view: its label plus, for a
// grouping, the items under it. This is a newer representation that keeps
// labels and sub-content correlated by position; the legacy pair remains
// available through Decompose.
type Element struct {
	Label    string
	Items    []*tree.Node // nil for plain-string elements
	Grouping bool
}

// Elements returns the position-aligned view of outline content.
func (d Decomposer) Elements(content *tree.Node) ([]Element, error) {
	elems, err := labelElements(content)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(elems))
	for i, el := range elems {
		e := Element{Label: d.labelOf(i, el)}
		if el != nil && el.Kind == tree.Mapping && len(el.Entries) > 0 {
			e.Grouping = true
			e.Items = groupItems(el.Entries[0].Value)
		}
		out = append(out, e)
	}
	return out, nil
}

// labelElements reduces content to the element sequence for label
// extraction: a mapping is read as the sequence of its values.
func labelElements(content *tree.Node) ([]*tree.Node, error) {
	if content == nil {
		return nil, fmt.Errorf("outline: content is absent")
	}
	switch content.Kind {
	case tree.Sequence:
		return content.Items, nil
	case tree.Mapping:
		vals := make([]*tree.Node, 0, len(content.Entries))
		for _, e := range content.Entries {
			vals = append(vals, e.Value)
		}
		return vals, nil
	default:
		return nil, fmt.Errorf("outline: content is a scalar, want a sequence or mapping")
	}
}

// groupElements reduces content for grouped-value extraction. There is no
// mapping-to-values reduction here: a mapping is iterated over its keys,
// which can never be groupings themselves, so it degrades to "no groups"
// rather than an error.
func groupElements(content *tree.Node) ([]*tree.Node, error) {
	if content == nil {
		return nil, fmt.Errorf("outline: content is absent")
	}
	switch content.Kind {
	case tree.Sequence:
		return content.Items, nil
	case tree.Mapping:
		keys := make([]*tree.Node, 0, len(content.Entries))
		for _, e := range content.Entries {
			keys = append(keys, e.Key)
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("outline: content is a scalar, want a sequence")
	}
}

// groupItems reads the sub-content of a grouping: a sequence contributes
// its items, anything else is wrapped as a single-item group.
func groupItems(v *tree.Node) []*tree.Node {
	if v == nil {
		return nil
	}
	if v.Kind == tree.Sequence {
		items := make([]*tree.Node, len(v.Items))
		copy(items, v.Items)
		return items
	}
	return []*tree.Node{v}
}

func (d Decomposer) rule() tree.Rule {
	if d.Rule != nil {
		return d.Rule
	}
	return tree.TrimTrailingNewlines
}

func (d Decomposer) notice(msg string, args ...any) {
	if d.Log != nil {
		d.Log.Info(msg, args...)
	}
}

func (d Decomposer) warnMultiKey(i int, el *tree.Node) {
	if d.Log == nil {
		return
	}
	keys := make([]string, 0, len(el.Entries))
	for _, e := range el.Entries {
		if s, ok := e.Key.StringValue(); ok {
			keys = append(keys, s)
		}
	}
	d.Log.Warn("grouping has multiple keys, using the first",
		"index", i,
		"keys", keys,
	)
}

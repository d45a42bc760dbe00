package tree

import (
	"fmt"
	"log/slog"
	"strings"
)

// Rule rewrites a single string leaf. The normalizer applies exactly one
// rule to every string in a tree; swap it to change what "canonical" means.
type Rule func(string) string

// TrimTrailingNewlines removes a trailing run of newline characters. Other
// whitespace is left alone; authors rely on indentation inside multi-line
// YAML scalars.
func TrimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}

// Normalizer rewrites every string leaf of a tree with its Rule. It never
// mutates the input; Apply always builds a fresh tree of the same shape.
type Normalizer struct {
	Rule Rule
	Log  *slog.Logger
}

// NewNormalizer returns a normalizer with the default trailing-newline rule.
func NewNormalizer(log *slog.Logger) Normalizer {
	return Normalizer{Rule: TrimTrailingNewlines, Log: log}
}

// Apply returns a normalized copy of n. Containers are rebuilt with the
// same length and order. Mapping keys are normalized too; if that collides
// two keys, the first occurrence keeps its position and the later value
// wins, matching map-insertion semantics. Non-string scalars pass through
// unchanged with an advisory log entry.
func (nz Normalizer) Apply(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Sequence:
		items := make([]*Node, len(n.Items))
		for i, it := range n.Items {
			items[i] = nz.Apply(it)
		}
		return &Node{Kind: Sequence, Items: items}
	case Mapping:
		entries := make([]Entry, 0, len(n.Entries))
		index := make(map[string]int, len(n.Entries))
		for _, e := range n.Entries {
			k := nz.Apply(e.Key)
			v := nz.Apply(e.Value)
			if ks, ok := k.StringValue(); ok {
				if at, seen := index[ks]; seen {
					entries[at].Value = v
					continue
				}
				index[ks] = len(entries)
			}
			entries = append(entries, Entry{Key: k, Value: v})
		}
		return &Node{Kind: Mapping, Entries: entries}
	default:
		if s, ok := n.Value.(string); ok {
			return &Node{Kind: Scalar, Value: nz.rule()(s)}
		}
		// Null scalars get the advisory too; every non-string leaf does.
		if nz.Log != nil {
			nz.Log.Debug("no string transformation applied",
				"type", fmt.Sprintf("%T", n.Value),
			)
		}
		return &Node{Kind: Scalar, Value: n.Value}
	}
}

func (nz Normalizer) rule() Rule {
	if nz.Rule != nil {
		return nz.Rule
	}
	return TrimTrailingNewlines
}

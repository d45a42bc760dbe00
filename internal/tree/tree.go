package tree

// Kind discriminates the three shapes a Node can take.
type Kind int

const (
	Scalar Kind = iota
	Sequence
	Mapping
)

// Node is one value in a document tree: a scalar leaf, a sequence, or a
// mapping. Mappings keep their entries in insertion order, since the
// documents this tree models are authored by hand and section order is
// meaningful.
type Node struct {
	Kind    Kind
	Value   any     // scalar payload: string, bool, int64, float64, or nil
	Items   []*Node // sequence elements
	Entries []Entry // mapping entries, in insertion order
}

// Entry is a single key/value pair of a mapping. Keys are full nodes
// because the normalizer rewrites them like any other value.
type Entry struct {
	Key   *Node
	Value *Node
}

// ScalarOf wraps a scalar payload in a Node.
func ScalarOf(v any) *Node {
	return &Node{Kind: Scalar, Value: v}
}

// SeqOf builds a sequence node.
func SeqOf(items ...*Node) *Node {
	return &Node{Kind: Sequence, Items: items}
}

// MapOf builds a mapping node from ordered entries.
func MapOf(entries ...Entry) *Node {
	return &Node{Kind: Mapping, Entries: entries}
}

// EntryOf pairs a string key with a value.
func EntryOf(key string, value *Node) Entry {
	return Entry{Key: ScalarOf(key), Value: value}
}

// StringValue returns the scalar string payload, if this node is one.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != Scalar {
		return "", false
	}
	s, ok := n.Value.(string)
	return s, ok
}

// Lookup returns the value under a string key of a mapping.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.Kind != Mapping {
		return nil, false
	}
	for _, e := range n.Entries {
		if k, ok := e.Key.StringValue(); ok && k == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Strings flattens a node into a string slice: a sequence yields its
// string-scalar elements, a lone string scalar yields itself.
func (n *Node) Strings() []string {
	if n == nil {
		return nil
	}
	if s, ok := n.StringValue(); ok {
		return []string{s}
	}
	if n.Kind != Sequence {
		return nil
	}
	out := make([]string, 0, len(n.Items))
	for _, it := range n.Items {
		if s, ok := it.StringValue(); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToGo converts a node to plain Go values for consumers that do not care
// about mapping order, such as template contexts. Mapping order is lost at
// this boundary.
func (n *Node) ToGo() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Sequence:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = it.ToGo()
		}
		return out
	case Mapping:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			if k, ok := e.Key.StringValue(); ok {
				out[k] = e.Value.ToGo()
			}
		}
		return out
	default:
		return n.Value
	}
}

// Equal reports deep equality of two trees, including mapping order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Sequence:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if !Equal(a.Entries[i].Key, b.Entries[i].Key) {
				return false
			}
			if !Equal(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return a.Value == b.Value
	}
}

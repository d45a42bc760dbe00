// Package loader parses YAML sources into document trees and serializes
// trees back out. It is the only place yaml.v3 node types appear; the rest
// of the system works on tree.Node.
package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sopforge/sopforge/internal/tree"
)

// maxDepth bounds alias expansion; document trees are acyclic by contract.
const maxDepth = 1000

// LoadFile reads a YAML file and returns its document tree.
func LoadFile(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return n, nil
}

// Load reads a YAML stream and returns its document tree.
func Load(r io.Reader) (*tree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document, preserving mapping order.
func Parse(data []byte) (*tree.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("loader: decode yaml: %w", err)
	}
	if root.Kind == 0 {
		// Empty input decodes to a zero node.
		return tree.ScalarOf(nil), nil
	}
	return fromYAML(&root, 0)
}

func fromYAML(n *yaml.Node, depth int) (*tree.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("loader: document nested deeper than %d levels", maxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tree.ScalarOf(nil), nil
		}
		return fromYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]*tree.Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return tree.SeqOf(items...), nil
	case yaml.MappingNode:
		entries := make([]tree.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := fromYAML(n.Content[i], depth+1)
			if err != nil {
				return nil, err
			}
			value, err := fromYAML(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, tree.Entry{Key: key, Value: value})
		}
		return tree.MapOf(entries...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return nil, fmt.Errorf("loader: unsupported yaml node kind %d at line %d", n.Kind, n.Line)
	}
}

func scalarFromYAML(n *yaml.Node) (*tree.Node, error) {
	switch n.Tag {
	case "!!null":
		return tree.ScalarOf(nil), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("loader: bad bool %q at line %d", n.Value, n.Line)
		}
		return tree.ScalarOf(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("loader: bad int %q at line %d", n.Value, n.Line)
		}
		return tree.ScalarOf(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("loader: bad float %q at line %d", n.Value, n.Line)
		}
		return tree.ScalarOf(f), nil
	default:
		// Strings, timestamps, and anything custom-tagged stay textual.
		return tree.ScalarOf(n.Value), nil
	}
}

// ToYAML converts a tree back into a yaml.v3 node, keeping mapping order.
// Marshal the result with yaml.Marshal to serialize a skeleton document.
func ToYAML(n *tree.Node) *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch n.Kind {
	case tree.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range n.Items {
			out.Content = append(out.Content, ToYAML(it))
		}
		return out
	case tree.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range n.Entries {
			out.Content = append(out.Content, ToYAML(e.Key), ToYAML(e.Value))
		}
		return out
	default:
		return scalarToYAML(n.Value)
	}
}

func scalarToYAML(v any) *yaml.Node {
	out := &yaml.Node{Kind: yaml.ScalarNode}
	switch x := v.(type) {
	case nil:
		out.Tag = "!!null"
		out.Value = "null"
	case bool:
		out.Tag = "!!bool"
		out.Value = strconv.FormatBool(x)
	case int64:
		out.Tag = "!!int"
		out.Value = strconv.FormatInt(x, 10)
	case int:
		out.Tag = "!!int"
		out.Value = strconv.Itoa(x)
	case float64:
		out.Tag = "!!float"
		out.Value = strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		out.Tag = "!!str"
		out.Value = x
	default:
		out.Tag = "!!str"
		out.Value = fmt.Sprint(x)
	}
	return out
}

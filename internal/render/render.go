// Package render serializes an inventory for display: a nested path-keyed
// YAML tree, or an indented text listing with colored diff markers. Display
// budgets (max definitions shown per file) are applied here, never in the
// core.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/jward/treeline"
)

// Options control display budgets and styling.
type Options struct {
	// MaxDefs is the per-file definition budget; entries beyond it are
	// collapsed into a single "+N more" marker. Zero or negative means
	// unlimited.
	MaxDefs int
}

// node is one level of the path tree. Children keep insertion order, which
// is path order since inventories arrive sorted.
type node struct {
	keys     []string
	children map[string]*node
	file     *treeline.FileReport
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(key string) *node {
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newNode()
	n.children[key] = c
	n.keys = append(n.keys, key)
	return c
}

func buildTree(inv *treeline.Inventory) *node {
	root := newNode()
	for i := range inv.Files {
		f := &inv.Files[i]
		cur := root
		for _, seg := range strings.Split(f.Path, "/") {
			cur = cur.child(seg)
		}
		cur.file = f
	}
	return root
}

// YAML renders the inventory as a nested path-keyed document.
func YAML(inv *treeline.Inventory, opts Options) ([]byte, error) {
	doc := treeYAML(buildTree(inv), opts)
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal inventory: %w", err)
	}
	return out, nil
}

func treeYAML(n *node, opts Options) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range n.keys {
		child := n.children[key]
		var value *yaml.Node
		if child.file != nil {
			value = fileYAML(child.file, opts)
		} else {
			value = treeYAML(child, opts)
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}
	return m
}

func fileYAML(f *treeline.FileReport, opts Options) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}

	if f.Description != "" {
		add("desc", &yaml.Node{Kind: yaml.ScalarNode, Value: f.Description})
	}
	if f.Stats != nil {
		add("changed", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: fmt.Sprintf("+%d/-%d", f.Stats.Added, f.Stats.Deleted),
		})
	}

	defs, extra := truncate(f.Definitions, opts.MaxDefs)
	if len(defs) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range defs {
			seq.Content = append(seq.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Value: defLine(&defs[i]),
			})
		}
		if extra > 0 {
			seq.Content = append(seq.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Value: fmt.Sprintf("… +%d more", extra),
			})
		}
		add("defs", seq)
	}

	// A file with nothing to show still appears as an empty map so the
	// tree records its existence.
	return m
}

// defLine is the single-line display form of a definition.
func defLine(d *treeline.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", d.Name, d.Kind)
	if d.Visibility == treeline.Private {
		sb.WriteString(" private")
	}
	if d.Extern {
		sb.WriteString(" extern")
	}
	fmt.Fprintf(&sb, " L%d-%d", d.StartLine, d.EndLine)
	if d.Diff != nil {
		fmt.Fprintf(&sb, " [%s +%d/-%d]", d.Diff.Status, d.Diff.Added, d.Diff.Deleted)
	}
	return sb.String()
}

func truncate(defs []treeline.Definition, budget int) ([]treeline.Definition, int) {
	if budget <= 0 || len(defs) <= budget {
		return defs, 0
	}
	return defs[:budget], len(defs) - budget
}

var (
	addedColor   = color.New(color.FgGreen)
	updatedColor = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// Text renders the inventory as an indented listing. Diff markers are
// colored when the writer supports it (color handles detection).
func Text(w io.Writer, inv *treeline.Inventory, opts Options) {
	textNode(w, buildTree(inv), 0, opts)
}

func textNode(w io.Writer, n *node, depth int, opts Options) {
	indent := strings.Repeat("  ", depth)
	for _, key := range n.keys {
		child := n.children[key]
		if child.file == nil {
			fmt.Fprintf(w, "%s%s/\n", indent, key)
			textNode(w, child, depth+1, opts)
			continue
		}
		textFile(w, indent, key, child.file, opts)
	}
}

func textFile(w io.Writer, indent, name string, f *treeline.FileReport, opts Options) {
	header := indent + name
	if f.Stats != nil {
		header += " " + changeMark(f.Stats)
	}
	fmt.Fprintln(w, header)
	if f.Description != "" {
		fmt.Fprintf(w, "%s  %s\n", indent, dimColor.Sprint(f.Description))
	}

	defs, extra := truncate(f.Definitions, opts.MaxDefs)
	for i := range defs {
		line := defLine(&defs[i])
		if defs[i].Diff != nil {
			switch defs[i].Diff.Status {
			case treeline.StatusAdded:
				line = addedColor.Sprint(line)
			case treeline.StatusUpdated:
				line = updatedColor.Sprint(line)
			}
		}
		fmt.Fprintf(w, "%s  %s\n", indent, line)
	}
	if extra > 0 {
		fmt.Fprintf(w, "%s  %s\n", indent, dimColor.Sprintf("… +%d more", extra))
	}
}

func changeMark(s *treeline.FileStats) string {
	return addedColor.Sprintf("+%d", s.Added) + "/" + updatedColor.Sprintf("-%d", s.Deleted)
}

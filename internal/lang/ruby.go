package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	register(Ruby, &Capability{
		Extensions: []string{".rb"},
		Grammar:    ruby.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"method", "singleton_method"},
			CatAggregate: {"class"},
			CatTrait:     {"module"},
			CatConst:     {"assignment"},
		},
		Visibility: rubyVisibility,
		// Top-level locals are invisible outside the file; only constant
		// assignments (capitalized) survive the export gate.
		ExportGatedConstants: true,
		FunctionValueKinds:   map[string]bool{"lambda": true},
		Bindings:             rubyBindings,
	})
}

// rubyVisibility: no file-level export concept; everything surfaced is
// reachable, so report public.
func rubyVisibility(_ *sitter.Node, _ string, _ bool, _ []byte) Visibility {
	return Public
}

func rubyBindings(n *sitter.Node, src []byte) []Binding {
	left := n.ChildByFieldName("left")
	if left == nil {
		return nil
	}
	switch left.Type() {
	case "constant":
		return []Binding{{
			Name:     NodeText(left, src),
			Node:     left,
			Value:    n.ChildByFieldName("right"),
			Exported: true,
		}}
	case "identifier":
		return []Binding{{
			Name:  NodeText(left, src),
			Node:  left,
			Value: n.ChildByFieldName("right"),
		}}
	}
	return nil
}

package lang

import (
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	register(Go, &Capability{
		Extensions: []string{".go"},
		Grammar:    golang.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_declaration", "method_declaration"},
			CatAggregate: {"type_spec/struct"},
			CatInterface: {"type_spec/interface"},
			CatAlias:     {"type_spec/alias", "type_alias"},
			CatConst:     {"const_spec", "var_spec"},
		},
		EffectiveKind:      goEffectiveKind,
		Unfold:             goUnfold,
		Visibility:         goVisibility,
		FunctionValueKinds: map[string]bool{"func_literal": true},
		Bindings:           goBindings,
	})
}

// goUnfold expands grouped type/const/var declarations into their specs, so
// classification and line ranges apply per declared name.
func goUnfold(n *sitter.Node) []*sitter.Node {
	switch n.Type() {
	case "type_declaration", "const_declaration", "var_declaration":
		var specs []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "type_spec", "type_alias", "const_spec", "var_spec":
				specs = append(specs, child)
			}
		}
		return specs
	}
	return nil
}

// goEffectiveKind refines type_spec by the shape of its type: struct and
// interface types are structurally distinct categories, everything else is
// a named type treated as an alias.
func goEffectiveKind(n *sitter.Node) string {
	if n.Type() != "type_spec" {
		return n.Type()
	}
	t := n.ChildByFieldName("type")
	if t == nil {
		return "type_spec/alias"
	}
	switch t.Type() {
	case "struct_type":
		return "type_spec/struct"
	case "interface_type":
		return "type_spec/interface"
	default:
		return "type_spec/alias"
	}
}

func goVisibility(_ *sitter.Node, name string, _ bool, _ []byte) Visibility {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return Public
	}
	return Private
}

// goBindings expands a const_spec or var_spec into one binding per declared
// identifier, pairing names with values positionally.
func goBindings(n *sitter.Node, src []byte) []Binding {
	var names []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "identifier" {
			names = append(names, child)
		}
	}

	var values []*sitter.Node
	if vl := n.ChildByFieldName("value"); vl != nil {
		for i := 0; i < int(vl.NamedChildCount()); i++ {
			values = append(values, vl.NamedChild(i))
		}
	}

	bindings := make([]Binding, 0, len(names))
	for i, id := range names {
		b := Binding{Name: NodeText(id, src), Node: id}
		if i < len(values) {
			b.Value = values[i]
		}
		b.Exported = goVisibility(nil, b.Name, false, nil) == Public
		bindings = append(bindings, b)
	}
	return bindings
}

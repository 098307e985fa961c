package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

func init() {
	register(C, &Capability{
		Extensions: []string{".c", ".h"},
		Grammar:    c.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_definition"},
			CatAggregate: {"struct_specifier", "union_specifier"},
			CatAlias:     {"type_definition"},
			CatEnum:      {"enum_specifier"},
			CatConst:     {"declaration"},
		},
		Unfold:       cUnfold,
		FallbackName: cFallbackName,
		Visibility:   cVisibility,
		Extern:       cExtern,
		Bindings:     cBindings,
	})
}

// declaratorKinds are the node kinds that introduce a name in a declaration.
var declaratorKinds = map[string]bool{
	"identifier":          true,
	"init_declarator":     true,
	"pointer_declarator":  true,
	"array_declarator":    true,
	"function_declarator": true,
}

// cUnfold surfaces a bare type definition ("struct S { ... };") from its
// declaration wrapper, when the grammar wraps it. A declaration that also
// declares variables keeps its own shape so the bindings path handles it.
func cUnfold(n *sitter.Node) []*sitter.Node {
	if n.Type() != "declaration" {
		return nil
	}
	var spec *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if declaratorKinds[child.Type()] {
			return nil
		}
		switch child.Type() {
		case "struct_specifier", "union_specifier", "enum_specifier", "class_specifier":
			spec = child
		}
	}
	if spec != nil && spec.ChildByFieldName("name") != nil {
		return []*sitter.Node{spec}
	}
	return nil
}

// declaratorName unwraps declarator nesting (pointers, arrays, functions,
// parentheses) down to the declared identifier.
func declaratorName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Type() {
		case "identifier", "type_identifier", "field_identifier":
			return NodeText(n, src)
		case "pointer_declarator", "array_declarator", "function_declarator",
			"parenthesized_declarator", "init_declarator":
			if d := n.ChildByFieldName("declarator"); d != nil {
				n = d
				continue
			}
			n = firstChildOfKind(n, "identifier", "type_identifier",
				"pointer_declarator", "function_declarator")
		default:
			return ""
		}
	}
	return ""
}

func cFallbackName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "function_definition", "type_definition":
		return declaratorName(n.ChildByFieldName("declarator"), src)
	}
	return ""
}

// cVisibility: C has no module system; static limits linkage to the
// translation unit, everything else is public.
func cVisibility(n *sitter.Node, _ string, _ bool, src []byte) Visibility {
	if sc := firstChildOfKind(n, "storage_class_specifier"); sc != nil {
		if NodeText(sc, src) == "static" {
			return Private
		}
	}
	return Public
}

func cExtern(n *sitter.Node, src []byte) bool {
	if sc := firstChildOfKind(n, "storage_class_specifier"); sc != nil {
		if NodeText(sc, src) == "extern" {
			return true
		}
	}
	// Declarations hoisted out of an extern "C" block (C++ headers).
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "linkage_specification" {
			return true
		}
	}
	return false
}

// cBindings expands a declaration into its declarators. Function prototypes
// are skipped: the definition, not the prototype, is the navigation anchor.
func cBindings(n *sitter.Node, src []byte) []Binding {
	var bindings []Binding
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "init_declarator":
			name := declaratorName(child.ChildByFieldName("declarator"), src)
			if name == "" {
				continue
			}
			bindings = append(bindings, Binding{
				Name:     name,
				Node:     child,
				Value:    child.ChildByFieldName("value"),
				Exported: true,
			})
		case "identifier", "pointer_declarator", "array_declarator":
			name := declaratorName(child, src)
			if name == "" {
				continue
			}
			bindings = append(bindings, Binding{Name: name, Node: child, Exported: true})
		}
	}
	return bindings
}

package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

func init() {
	register(PHP, &Capability{
		Extensions: []string{".php"},
		Grammar:    php.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_definition"},
			CatAggregate: {"class_declaration"},
			CatTrait:     {"trait_declaration"},
			CatInterface: {"interface_declaration"},
			CatEnum:      {"enum_declaration"},
			CatConst:     {"const_declaration"},
		},
		// Top-level symbols land in the global (or namespace) scope and
		// are reachable from any include site, so everything is public.
		FunctionValueKinds: map[string]bool{
			"anonymous_function_creation_expression": true,
			"arrow_function":                         true,
		},
		Bindings: phpBindings,
	})
}

// phpBindings expands a const declaration into its const_element entries.
// A const_element has no field names; its first name child is the constant
// and the remaining named child is the bound expression.
func phpBindings(n *sitter.Node, src []byte) []Binding {
	var bindings []Binding
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "const_element" {
			continue
		}
		name := firstChildOfKind(child, "name")
		if name == nil {
			continue
		}
		var value *sitter.Node
		if count := int(child.NamedChildCount()); count > 1 {
			value = child.NamedChild(count - 1)
		}
		bindings = append(bindings, Binding{
			Name:     NodeText(name, src),
			Node:     child,
			Value:    value,
			Exported: true,
		})
	}
	return bindings
}

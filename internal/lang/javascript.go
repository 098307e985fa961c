package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

func init() {
	register(JavaScript, &Capability{
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Grammar:    javascript.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_declaration", "generator_function_declaration"},
			CatAggregate: {"class_declaration"},
			CatConst:     {"lexical_declaration", "variable_declaration"},
		},
		ExportWrapper:        "export_statement",
		Visibility:           jsVisibility,
		ExportGatedConstants: true,
		FunctionValueKinds:   jsFunctionValueKinds,
		Bindings:             jsBindings,
	})
}

// jsFunctionValueKinds covers both grammar generations: older trees emit
// "function" for function expressions, newer ones "function_expression".
var jsFunctionValueKinds = map[string]bool{
	"arrow_function":      true,
	"function":            true,
	"function_expression": true,
	"generator_function":  true,
}

// jsVisibility: a file is a module, so only exported declarations are
// visible outside it.
func jsVisibility(_ *sitter.Node, _ string, exported bool, _ []byte) Visibility {
	if exported {
		return Public
	}
	return Private
}

// jsBindings expands a lexical or var declaration into its declarators.
// Destructuring patterns are skipped; they rarely name a file's entry point.
func jsBindings(n *sitter.Node, src []byte) []Binding {
	var bindings []Binding
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		bindings = append(bindings, Binding{
			Name:  NodeText(name, src),
			Node:  child,
			Value: child.ChildByFieldName("value"),
		})
	}
	return bindings
}

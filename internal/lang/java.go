package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

func init() {
	register(Java, &Capability{
		Extensions: []string{".java"},
		Grammar:    java.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"method_declaration", "constructor_declaration"},
			CatAggregate: {"class_declaration", "record_declaration"},
			CatInterface: {"interface_declaration", "annotation_type_declaration"},
			CatEnum:      {"enum_declaration"},
			CatConst:     {"field_declaration"},
		},
		Visibility: javaVisibility,
		Bindings:   javaBindings,
	})
}

func javaVisibility(n *sitter.Node, _ string, _ bool, src []byte) Visibility {
	if mods := firstChildOfKind(n, "modifiers"); mods != nil {
		if strings.Contains(NodeText(mods, src), "public") {
			return Public
		}
	}
	return Private
}

func javaBindings(n *sitter.Node, src []byte) []Binding {
	var bindings []Binding
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		bindings = append(bindings, Binding{
			Name:     NodeText(name, src),
			Node:     child,
			Value:    child.ChildByFieldName("value"),
			Exported: true,
		})
	}
	return bindings
}

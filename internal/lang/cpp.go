package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

func init() {
	register(CPP, &Capability{
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
		Grammar:    cpp.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_definition"},
			CatAggregate: {"struct_specifier", "union_specifier", "class_specifier"},
			CatAlias:     {"type_definition", "alias_declaration"},
			CatEnum:      {"enum_specifier"},
			CatConst:     {"declaration"},
		},
		Unfold:       cppUnfold,
		FallbackName: cFallbackName,
		Visibility:   cVisibility,
		Extern:       cExtern,
		Bindings:     cBindings,
	})
}

// cppUnfold strips template wrappers and hoists the contents of extern "C"
// blocks to top level; cExtern detects the linkage wrapper on the way back.
func cppUnfold(n *sitter.Node) []*sitter.Node {
	switch n.Type() {
	case "template_declaration":
		var inner []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "function_definition", "class_specifier", "struct_specifier",
				"alias_declaration", "declaration":
				inner = append(inner, child)
			}
		}
		return inner
	case "linkage_specification":
		body := n.ChildByFieldName("body")
		if body == nil {
			return nil
		}
		if body.Type() != "declaration_list" {
			return []*sitter.Node{body}
		}
		var inner []*sitter.Node
		for i := 0; i < int(body.NamedChildCount()); i++ {
			inner = append(inner, body.NamedChild(i))
		}
		return inner
	}
	return cUnfold(n)
}

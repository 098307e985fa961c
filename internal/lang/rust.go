package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

func init() {
	register(Rust, &Capability{
		Extensions: []string{".rs"},
		Grammar:    rust.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_item"},
			CatAggregate: {"struct_item", "union_item", "impl_item"},
			CatTrait:     {"trait_item"},
			CatAlias:     {"type_item"},
			CatEnum:      {"enum_item"},
			CatConst:     {"const_item", "static_item"},
		},
		FallbackName: rustFallbackName,
		Visibility:   rustVisibility,
		Extern:       rustExtern,
	})
}

// rustFallbackName handles impl blocks, which carry no name of their own:
// the definition is named after the type being implemented.
func rustFallbackName(n *sitter.Node, src []byte) string {
	if n.Type() != "impl_item" {
		return ""
	}
	t := n.ChildByFieldName("type")
	if t == nil {
		return ""
	}
	// impl<T> Vec<T> names Vec, not Vec<T>.
	if t.Type() == "generic_type" {
		if inner := t.ChildByFieldName("type"); inner != nil {
			return NodeText(inner, src)
		}
	}
	return NodeText(t, src)
}

// rustVisibility treats any visibility modifier (pub, pub(crate), ...) as
// public; everything else is module-private.
func rustVisibility(n *sitter.Node, _ string, _ bool, _ []byte) Visibility {
	if hasChildOfKind(n, "visibility_modifier") {
		return Public
	}
	return Private
}

func rustExtern(n *sitter.Node, src []byte) bool {
	if mods := firstChildOfKind(n, "function_modifiers"); mods != nil {
		return strings.Contains(NodeText(mods, src), "extern")
	}
	return false
}

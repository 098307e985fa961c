package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	register(Python, &Capability{
		Extensions: []string{".py"},
		Grammar:    python.GetLanguage,
		Kinds: map[Category][]string{
			CatFunction:  {"function_definition"},
			CatAggregate: {"class_definition"},
			CatConst:     {"expression_statement/assignment"},
		},
		EffectiveKind:        pyEffectiveKind,
		Unfold:               pyUnfold,
		Visibility:           pyVisibility,
		ExportGatedConstants: true,
		FunctionValueKinds:   map[string]bool{"lambda": true},
		Bindings:             pyBindings,
	})
}

// pyUnfold strips decorators so the wrapped definition classifies normally.
// The decorated node's range (including decorators) is lost, which is fine:
// decorators rarely move a definition across the size-filter boundary.
func pyUnfold(n *sitter.Node) []*sitter.Node {
	if n.Type() != "decorated_definition" {
		return nil
	}
	if def := n.ChildByFieldName("definition"); def != nil {
		return []*sitter.Node{def}
	}
	return nil
}

// pyEffectiveKind refines module-level expression statements: only plain
// assignments are candidate constants.
func pyEffectiveKind(n *sitter.Node) string {
	if n.Type() != "expression_statement" {
		return n.Type()
	}
	if n.NamedChildCount() > 0 && n.NamedChild(0).Type() == "assignment" {
		return "expression_statement/assignment"
	}
	return n.Type()
}

// pyVisibility follows the leading-underscore convention; `import *` and
// documentation tooling both honor it.
func pyVisibility(_ *sitter.Node, name string, _ bool, _ []byte) Visibility {
	if strings.HasPrefix(name, "_") {
		return Private
	}
	return Public
}

// pyBindings expands a module-level assignment. Tuple targets produce one
// binding per identifier, paired positionally with the right-hand side.
func pyBindings(n *sitter.Node, src []byte) []Binding {
	assign := n
	if assign.Type() == "expression_statement" {
		if assign.NamedChildCount() == 0 {
			return nil
		}
		assign = assign.NamedChild(0)
	}
	if assign.Type() != "assignment" {
		return nil
	}

	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil {
		return nil
	}

	var names []*sitter.Node
	switch left.Type() {
	case "identifier":
		names = append(names, left)
	case "pattern_list", "tuple_pattern":
		for i := 0; i < int(left.NamedChildCount()); i++ {
			if id := left.NamedChild(i); id.Type() == "identifier" {
				names = append(names, id)
			}
		}
	default:
		return nil
	}

	var values []*sitter.Node
	if right != nil {
		if right.Type() == "expression_list" || right.Type() == "tuple" {
			for i := 0; i < int(right.NamedChildCount()); i++ {
				values = append(values, right.NamedChild(i))
			}
		} else {
			values = append(values, right)
		}
	}

	bindings := make([]Binding, 0, len(names))
	for i, id := range names {
		b := Binding{Name: NodeText(id, src), Node: id}
		if len(names) == 1 && len(values) >= 1 {
			b.Value = right
		} else if i < len(values) {
			b.Value = values[i]
		}
		b.Exported = !strings.HasPrefix(b.Name, "_")
		bindings = append(bindings, b)
	}
	return bindings
}

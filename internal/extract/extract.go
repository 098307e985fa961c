// Package extract walks a parsed syntax tree's top-level children and emits
// the file's definitions: named, line-ranged units worth surfacing as
// navigation anchors. Nested and local definitions are intentionally
// excluded; the result is a map of entry points, not a symbol table.
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/treeline/internal/lang"
)

// MinBodyLines is the size gate for function, aggregate and trait bodies.
// A body must span strictly more lines than this to be included; smaller
// bodies add noise without helping navigation.
const MinBodyLines = 5

// DefinitionKind is the closed set of semantic definition kinds. Each
// language maps only a subset of its node kinds into this set.
type DefinitionKind string

const (
	KindFunction  DefinitionKind = "function"
	KindAggregate DefinitionKind = "aggregate"
	KindTrait     DefinitionKind = "trait"
	KindAlias     DefinitionKind = "alias"
	KindEnum      DefinitionKind = "enum"
	KindConst     DefinitionKind = "const"
)

// DiffStatus classifies how a definition changed relative to the baseline.
type DiffStatus string

const (
	StatusAdded   DiffStatus = "added"
	StatusUpdated DiffStatus = "updated"
)

// DefinitionDiff is attached to a definition only when diff attribution
// finds overlap; absence means unchanged since the baseline. Deleted counts
// are hunk-local totals, not exact per-definition deltas: the definition's
// position in the old file is not derivable from new-file data alone.
type DefinitionDiff struct {
	Status  DiffStatus
	Added   int
	Deleted int
}

// Definition is one named top-level unit. Lines are 1-based and inclusive;
// StartLine <= EndLine always holds.
type Definition struct {
	Name       string
	StartLine  int
	EndLine    int
	Kind       DefinitionKind
	Visibility lang.Visibility
	Extern     bool
	Diff       *DefinitionDiff
}

// categoryKind maps registry categories onto definition kinds. Traits and
// interfaces share a kind but differ in size filtering.
var categoryKind = map[lang.Category]DefinitionKind{
	lang.CatFunction:  KindFunction,
	lang.CatAggregate: KindAggregate,
	lang.CatTrait:     KindTrait,
	lang.CatInterface: KindTrait,
	lang.CatAlias:     KindAlias,
	lang.CatEnum:      KindEnum,
	lang.CatConst:     KindConst,
}

// sizeFiltered categories must span more than MinBodyLines lines. Aliases,
// interfaces, enums and constants are structurally small but semantically
// important, so they pass unfiltered.
var sizeFiltered = map[lang.Category]bool{
	lang.CatFunction:  true,
	lang.CatAggregate: true,
	lang.CatTrait:     true,
}

// File extracts the ordered, first-occurrence-wins deduplicated definition
// sequence for one parsed file. A node that matches no category, or whose
// name cannot be resolved, yields nothing; that is the normal outcome for
// most statements, never an error.
func File(root *sitter.Node, language lang.Language, src []byte) []Definition {
	c := lang.CapabilityFor(language)
	if c == nil || root == nil {
		return nil
	}

	x := extractor{cap: c, src: src, seen: make(map[string]bool)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		x.topLevel(root.NamedChild(i))
	}
	return x.defs
}

type extractor struct {
	cap  *lang.Capability
	src  []byte
	seen map[string]bool
	defs []Definition
}

// topLevel processes one immediate child of the root: unwrap the export
// wrapper if present, expand grouped declarations, classify each piece.
func (x *extractor) topLevel(n *sitter.Node) {
	n, exported := x.unwrapExport(n)

	nodes := []*sitter.Node{n}
	if x.cap.Unfold != nil {
		if unfolded := x.cap.Unfold(n); unfolded != nil {
			nodes = unfolded
		}
	}

	for _, node := range nodes {
		x.classify(node, exported)
	}
}

// unwrapExport strips a language's export wrapper, reporting whether one
// was present. A no-op for languages without wrappers.
func (x *extractor) unwrapExport(n *sitter.Node) (*sitter.Node, bool) {
	if x.cap.ExportWrapper == "" || n.Type() != x.cap.ExportWrapper {
		return n, false
	}
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return decl, true
	}
	if n.NamedChildCount() > 0 {
		return n.NamedChild(0), true
	}
	return n, true
}

func (x *extractor) classify(n *sitter.Node, exported bool) {
	kind := n.Type()
	if x.cap.EffectiveKind != nil {
		kind = x.cap.EffectiveKind(n)
	}
	cat, ok := x.cap.Classify(kind)
	if !ok {
		return
	}

	if cat == lang.CatConst {
		x.constant(n, exported)
		return
	}

	name := x.nameOf(n)
	if name == "" {
		return
	}
	if sizeFiltered[cat] && lineSpan(n) <= MinBodyLines {
		return
	}

	x.emit(Definition{
		Name:       name,
		StartLine:  startLine(n),
		EndLine:    endLine(n),
		Kind:       categoryKind[cat],
		Visibility: x.visibility(n, name, exported),
		Extern:     x.extern(n),
	})
}

// constant handles declaration statements that serve as plain variable
// bindings. Non-exported bindings are dropped for export-gated languages,
// except when the bound value is a sizeable anonymous function: such
// bindings are the file's true entry points and are reclassified as
// functions regardless of export status.
func (x *extractor) constant(n *sitter.Node, exported bool) {
	bindings := x.bindingsOf(n)

	first := true
	for _, b := range bindings {
		// The first emitted binding represents the whole statement;
		// later siblings get their own declarator's range so the same
		// lines are not double-reported.
		rangeNode := b.Node
		if first {
			rangeNode = n
		}

		if b.Value != nil && x.cap.FunctionValueKinds[b.Value.Type()] && lineSpan(rangeNode) > MinBodyLines {
			x.emit(Definition{
				Name:       b.Name,
				StartLine:  startLine(rangeNode),
				EndLine:    endLine(rangeNode),
				Kind:       KindFunction,
				Visibility: x.visibility(n, b.Name, exported),
				Extern:     x.extern(n),
			})
			first = false
			continue
		}

		if x.cap.ExportGatedConstants && !exported && !b.Exported {
			continue
		}

		x.emit(Definition{
			Name:       b.Name,
			StartLine:  startLine(rangeNode),
			EndLine:    endLine(rangeNode),
			Kind:       KindConst,
			Visibility: x.visibility(n, b.Name, exported),
			Extern:     x.extern(n),
		})
		first = false
	}
}

func (x *extractor) bindingsOf(n *sitter.Node) []lang.Binding {
	if x.cap.Bindings != nil {
		return x.cap.Bindings(n, x.src)
	}
	if name := x.nameOf(n); name != "" {
		return []lang.Binding{{Name: name, Node: n, Exported: true}}
	}
	return nil
}

// nameOf tries the generic name field first, then the language's fallback.
func (x *extractor) nameOf(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return lang.NodeText(name, x.src)
	}
	if x.cap.FallbackName != nil {
		return x.cap.FallbackName(n, x.src)
	}
	return ""
}

func (x *extractor) visibility(n *sitter.Node, name string, exported bool) lang.Visibility {
	if x.cap.Visibility == nil {
		return lang.Public
	}
	return x.cap.Visibility(n, name, exported, x.src)
}

func (x *extractor) extern(n *sitter.Node) bool {
	return x.cap.Extern != nil && x.cap.Extern(n, x.src)
}

func (x *extractor) emit(d Definition) {
	if d.Name == "" || x.seen[d.Name] {
		return
	}
	x.seen[d.Name] = true
	x.defs = append(x.defs, d)
}

func startLine(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }
func endLine(n *sitter.Node) int   { return int(n.EndPoint().Row) + 1 }

func lineSpan(n *sitter.Node) int { return endLine(n) - startLine(n) + 1 }

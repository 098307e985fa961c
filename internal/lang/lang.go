// Package lang is the per-language capability registry: which tree-sitter
// node kinds map to which semantic definition categories, how a definition's
// name is resolved, and how visibility and linkage are determined. Adding a
// language means adding one capability record in its own file; the extractor
// never branches on language directly.
package lang

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/src-d/enry/v2"
)

// Language is a closed enumeration of supported grammars.
type Language string

const (
	Go         Language = "go"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Rust       Language = "rust"
	C          Language = "c"
	CPP        Language = "cpp"
	Java       Language = "java"
	Ruby       Language = "ruby"
	PHP        Language = "php"
)

// ErrUnsupported is returned when no grammar exists for a language tag.
var ErrUnsupported = errors.New("unsupported language")

// Visibility reports whether a definition is reachable outside its
// defining file per that language's module conventions. Languages with no
// export concept report public for everything.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Category is a semantic definition category. Classification precedence is
// the declaration order below: function beats aggregate beats trait, and so
// on. A node kind is never double-classified.
type Category int

const (
	CatFunction Category = iota
	CatAggregate
	CatTrait
	CatInterface
	CatAlias
	CatEnum
	CatConst
	numCategories
)

// Binding is one name introduced by a constant-category declaration
// statement. Node is the narrowest node carrying the binding (declarator,
// spec, assignment target); Value is the bound expression when known.
type Binding struct {
	Name     string
	Node     *sitter.Node
	Value    *sitter.Node
	Exported bool
}

// Capability describes one language to the extractor. All fields are pure
// data or pure functions; records are registered once at init time and
// never mutated afterward.
type Capability struct {
	Extensions []string
	Grammar    func() *sitter.Language

	// Kinds lists the concrete node kinds belonging to each category.
	Kinds map[Category][]string

	// ExportWrapper is the node kind that wraps exported declarations
	// (e.g. export_statement). Empty for languages without a wrapper.
	ExportWrapper string

	// EffectiveKind returns the kind string used for category lookup.
	// Nil means "use the node's own kind". Go refines type_spec nodes by
	// the shape of their type field.
	EffectiveKind func(n *sitter.Node) string

	// Unfold expands a grouped declaration (Go's type/const/var blocks,
	// C++ template wrappers) into its member declaration nodes. Nil means
	// no grouping. Returning nil for a node means "not a group".
	Unfold func(n *sitter.Node) []*sitter.Node

	// FallbackName resolves a definition's name when the node carries no
	// generic "name" field.
	FallbackName func(n *sitter.Node, src []byte) string

	// Visibility classifies a named definition. exported reports whether
	// the node came out of an export wrapper.
	Visibility func(n *sitter.Node, name string, exported bool, src []byte) Visibility

	// Extern reports compiler-level external linkage markers.
	Extern func(n *sitter.Node, src []byte) bool

	// ExportGatedConstants drops non-exported top-level bindings, for
	// languages whose module system makes them invisible outside the file.
	ExportGatedConstants bool

	// FunctionValueKinds are node kinds of anonymous function values. A
	// binding whose value has one of these kinds is reclassified as a
	// function by the extractor.
	FunctionValueKinds map[string]bool

	// Bindings expands a constant-category statement into its bindings.
	// Nil means a single binding resolved through the name field.
	Bindings func(n *sitter.Node, src []byte) []Binding

	// kindToCategory is derived from Kinds at registration, honoring
	// category precedence (earlier categories win).
	kindToCategory map[string]Category
}

// Classify returns the category for a node kind string.
func (c *Capability) Classify(kind string) (Category, bool) {
	cat, ok := c.kindToCategory[kind]
	return cat, ok
}

// capabilities maps language tags to their records. Populated by init()
// functions in the per-language files.
var capabilities = map[Language]*Capability{}

func register(l Language, c *Capability) {
	c.kindToCategory = make(map[string]Category)
	for cat := Category(0); cat < numCategories; cat++ {
		for _, kind := range c.Kinds[cat] {
			if _, taken := c.kindToCategory[kind]; !taken {
				c.kindToCategory[kind] = cat
			}
		}
	}
	capabilities[l] = c
}

// CapabilityFor returns the capability record for a language, or nil if the
// language is not registered.
func CapabilityFor(l Language) *Capability {
	return capabilities[l]
}

// All returns every registered language tag.
func All() []Language {
	langs := make([]Language, 0, len(capabilities))
	for l := range capabilities {
		langs = append(langs, l)
	}
	return langs
}

// extToLanguage maps unambiguous file extensions to language tags.
var extToLanguage = map[string]Language{
	".go":   Go,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".ts":   TypeScript,
	".tsx":  TypeScript,
	".py":   Python,
	".rs":   Rust,
	".c":    C,
	".cpp":  CPP,
	".cc":   CPP,
	".cxx":  CPP,
	".hpp":  CPP,
	".hh":   CPP,
	".java": Java,
	".rb":   Ruby,
	".php":  PHP,
}

// enryToLanguage maps enry's classifier names back to our tags, for the
// extensions that need content-based disambiguation.
var enryToLanguage = map[string]Language{
	"C":   C,
	"C++": CPP,
}

// Detect returns the language tag for a file. Most extensions resolve from
// the table alone; .h headers are disambiguated by content via enry and
// default to C when the classifier is unsure.
func Detect(path string, content []byte) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := extToLanguage[ext]; ok {
		return l, true
	}
	if ext == ".h" {
		if l, ok := enryToLanguage[enry.GetLanguage(filepath.Base(path), content)]; ok {
			return l, true
		}
		return C, true
	}
	return "", false
}

// Grammars is a lazily populated, process-shareable cache of tree-sitter
// grammar objects keyed by language. Grammars are immutable once loaded, so
// a cached pointer is safe to share across concurrent parsers.
type Grammars struct {
	mu     sync.Mutex
	byLang map[Language]*sitter.Language
}

// NewGrammars returns an empty grammar cache.
func NewGrammars() *Grammars {
	return &Grammars{byLang: make(map[Language]*sitter.Language)}
}

// Get returns the grammar for a language, loading it on first use.
func (g *Grammars) Get(l Language) (*sitter.Language, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if grammar, ok := g.byLang[l]; ok {
		return grammar, nil
	}
	c := capabilities[l]
	if c == nil {
		return nil, ErrUnsupported
	}
	grammar := c.Grammar()
	g.byLang[l] = grammar
	return grammar, nil
}

// Reset drops all cached grammars. Intended for test isolation.
func (g *Grammars) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byLang = make(map[Language]*sitter.Language)
}

// NodeText returns the source text of a node.
func NodeText(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

// firstChildOfKind returns the first named child with one of the given
// kinds, or nil.
func firstChildOfKind(n *sitter.Node, kinds ...string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		for _, k := range kinds {
			if child.Type() == k {
				return child
			}
		}
	}
	return nil
}

// hasChildOfKind reports whether any child (named or not) has the kind.
func hasChildOfKind(n *sitter.Node, kind string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == kind {
			return true
		}
	}
	return false
}

package extract_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/jward/treeline/internal/extract"
	"github.com/jward/treeline/internal/lang"
)

var grammars = lang.NewGrammars()

// extractSource parses src and returns its definitions.
func extractSource(t *testing.T, language lang.Language, src string) []extract.Definition {
	t.Helper()
	grammar, err := grammars.Get(language)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return extract.File(tree.RootNode(), language, []byte(src))
}

func byName(defs []extract.Definition, name string) *extract.Definition {
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i]
		}
	}
	return nil
}

func names(defs []extract.Definition) []string {
	out := make([]string, len(defs))
	for i := range defs {
		out[i] = defs[i].Name
	}
	return out
}

func TestFile_NilRootOrUnknownLanguage(t *testing.T) {
	require.Nil(t, extract.File(nil, lang.Go, nil))

	grammar, err := grammars.Get(lang.Go)
	require.NoError(t, err)
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte("package p\n"))
	require.NoError(t, err)
	defer tree.Close()

	require.Nil(t, extract.File(tree.RootNode(), lang.Language("cobol"), []byte("package p\n")))
}

func TestFile_Deterministic(t *testing.T) {
	src := `package p

func First() {
	a := 1
	b := 2
	c := 3
	_ = a + b + c
}

func Second() {
	a := 1
	b := 2
	c := 3
	_ = a + b + c
}
`
	a := extractSource(t, lang.Go, src)
	b := extractSource(t, lang.Go, src)
	require.Equal(t, a, b)
	require.Equal(t, []string{"First", "Second"}, names(a))
}

func TestFile_RangeInvariant(t *testing.T) {
	src := `package p

const Answer = 42

func Big() {
	a := 1
	b := 2
	c := 3
	_ = a + b + c
}
`
	for _, d := range extractSource(t, lang.Go, src) {
		require.GreaterOrEqual(t, d.StartLine, 1, "definition %s", d.Name)
		require.LessOrEqual(t, d.StartLine, d.EndLine, "definition %s", d.Name)
	}
}

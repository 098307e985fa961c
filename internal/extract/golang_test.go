package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/treeline/internal/extract"
	"github.com/jward/treeline/internal/lang"
)

func TestGo_FunctionSizeBoundary(t *testing.T) {
	// sixLines spans exactly MinBodyLines+1 lines and is included;
	// fiveLines spans exactly MinBodyLines and is excluded. The filter
	// is strict-greater-than.
	src := `package p

func sixLines() {
	a := 1
	b := 2
	c := 3
	_ = a + b + c
}

func fiveLines() {
	a := 1
	b := 2
	_ = a + b
}
`
	defs := extractSource(t, lang.Go, src)
	require.NotNil(t, byName(defs, "sixLines"))
	require.Nil(t, byName(defs, "fiveLines"))

	six := byName(defs, "sixLines")
	assert.Equal(t, extract.KindFunction, six.Kind)
	assert.Equal(t, lang.Private, six.Visibility)
	assert.Equal(t, 3, six.StartLine)
	assert.Equal(t, 8, six.EndLine)
}

func TestGo_Methods(t *testing.T) {
	src := `package p

func (s *Server) Handle(req string) error {
	if req == "" {
		return nil
	}
	s.count++
	s.last = req
	return nil
}
`
	defs := extractSource(t, lang.Go, src)
	h := byName(defs, "Handle")
	require.NotNil(t, h)
	assert.Equal(t, extract.KindFunction, h.Kind)
	assert.Equal(t, lang.Public, h.Visibility)
}

func TestGo_TypeGroups(t *testing.T) {
	src := `package p

type (
	Config struct {
		Host    string
		Port    int
		Verbose bool
		Workers int
	}

	tiny struct {
		x int
	}

	Handler interface {
		Handle(string) error
	}

	ID int

	Alias = Config
)
`
	defs := extractSource(t, lang.Go, src)

	cfg := byName(defs, "Config")
	require.NotNil(t, cfg)
	assert.Equal(t, extract.KindAggregate, cfg.Kind)
	assert.Equal(t, lang.Public, cfg.Visibility)

	// Small structs fall under the size filter.
	assert.Nil(t, byName(defs, "tiny"))

	// Interfaces and aliases have no size filter.
	h := byName(defs, "Handler")
	require.NotNil(t, h)
	assert.Equal(t, extract.KindTrait, h.Kind)

	id := byName(defs, "ID")
	require.NotNil(t, id)
	assert.Equal(t, extract.KindAlias, id.Kind)

	al := byName(defs, "Alias")
	require.NotNil(t, al)
	assert.Equal(t, extract.KindAlias, al.Kind)
}

func TestGo_ConstAndVarGroups(t *testing.T) {
	src := `package p

const (
	MaxDepth = 16
	minDepth = 1
)

var debug, Verbose = false, true
`
	defs := extractSource(t, lang.Go, src)

	// Go constants are not export-gated: package-private bindings are
	// still visible across files in the package.
	maxd := byName(defs, "MaxDepth")
	require.NotNil(t, maxd)
	assert.Equal(t, extract.KindConst, maxd.Kind)
	assert.Equal(t, lang.Public, maxd.Visibility)

	mind := byName(defs, "minDepth")
	require.NotNil(t, mind)
	assert.Equal(t, lang.Private, mind.Visibility)

	// Compound var statements expand into one definition per name.
	require.NotNil(t, byName(defs, "debug"))
	require.NotNil(t, byName(defs, "Verbose"))
}

func TestGo_FuncLiteralBindingBecomesFunction(t *testing.T) {
	src := `package p

var handle = func(req string) string {
	if req == "" {
		return ""
	}
	out := "handled:"
	out += req
	return out
}
`
	defs := extractSource(t, lang.Go, src)
	h := byName(defs, "handle")
	require.NotNil(t, h)
	assert.Equal(t, extract.KindFunction, h.Kind)
}

func TestGo_DedupFirstWins(t *testing.T) {
	src := `package p

func (a Alpha) String() string {
	s := "alpha"
	s += "!"
	s += "!"
	s += "!"
	return s
}

func (b Beta) String() string {
	s := "beta"
	s += "?"
	s += "?"
	s += "?"
	return s
}
`
	defs := extractSource(t, lang.Go, src)
	count := 0
	for _, d := range defs {
		if d.Name == "String" {
			count++
		}
	}
	require.Equal(t, 1, count)
	// First occurrence (Alpha's, starting line 3) wins.
	assert.Equal(t, 3, byName(defs, "String").StartLine)
}

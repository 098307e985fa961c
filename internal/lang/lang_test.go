package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_Extensions(t *testing.T) {
	cases := map[string]Language{
		"main.go":       Go,
		"app.js":        JavaScript,
		"component.jsx": JavaScript,
		"mod.mjs":       JavaScript,
		"legacy.cjs":    JavaScript,
		"index.ts":      TypeScript,
		"view.tsx":      TypeScript,
		"script.py":     Python,
		"lib.rs":        Rust,
		"alloc.c":       C,
		"engine.cpp":    CPP,
		"engine.cc":     CPP,
		"engine.cxx":    CPP,
		"engine.hpp":    CPP,
		"engine.hh":     CPP,
		"Main.java":     Java,
		"worker.rb":     Ruby,
		"index.php":     PHP,
		"dir/nested.GO": Go,
		"UPPER/CASE.Py": Python,
	}
	for path, want := range cases {
		got, ok := Detect(path, nil)
		require.True(t, ok, "path %q", path)
		assert.Equal(t, want, got, "path %q", path)
	}
}

func TestDetect_Unsupported(t *testing.T) {
	for _, path := range []string{"README", "notes.txt", "data.json", "style.css"} {
		_, ok := Detect(path, nil)
		assert.False(t, ok, "path %q", path)
	}
}

func TestDetect_HeaderDisambiguation(t *testing.T) {
	cppHeader := []byte(`#pragma once
#include <vector>

namespace geo {

template <typename T>
class Point {
public:
    T x, y;
    std::vector<T> history;
};

}
`)
	l, ok := Detect("point.h", cppHeader)
	require.True(t, ok)
	assert.Equal(t, CPP, l)

	// An empty header gives the classifier nothing to work with; the
	// fallback is plain C.
	l, ok = Detect("empty.h", nil)
	require.True(t, ok)
	assert.Equal(t, C, l)
}

func TestRegistry_AllLanguagesHaveRecords(t *testing.T) {
	want := []Language{Go, JavaScript, TypeScript, Python, Rust, C, CPP, Java, Ruby, PHP}
	assert.ElementsMatch(t, want, All())

	for _, l := range want {
		c := CapabilityFor(l)
		require.NotNil(t, c, "language %s", l)
		assert.NotNil(t, c.Grammar, "language %s", l)
		assert.NotEmpty(t, c.Kinds[CatFunction], "language %s has no function kinds", l)
	}
}

func TestRegistry_PrecedenceOnClassify(t *testing.T) {
	c := &Capability{
		Kinds: map[Category][]string{
			CatFunction:  {"shared_kind"},
			CatAggregate: {"shared_kind", "agg_only"},
		},
	}
	register("testlang", c)
	defer delete(capabilities, "testlang")

	cat, ok := c.Classify("shared_kind")
	require.True(t, ok)
	assert.Equal(t, CatFunction, cat)

	cat, ok = c.Classify("agg_only")
	require.True(t, ok)
	assert.Equal(t, CatAggregate, cat)

	_, ok = c.Classify("unknown_kind")
	assert.False(t, ok)
}

func TestGrammars_GetCachesAndResets(t *testing.T) {
	g := NewGrammars()

	first, err := g.Get(Go)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := g.Get(Go)
	require.NoError(t, err)
	assert.Same(t, first, second)

	g.Reset()
	third, err := g.Get(Go)
	require.NoError(t, err)
	require.NotNil(t, third)
}

func TestGrammars_Unsupported(t *testing.T) {
	g := NewGrammars()
	_, err := g.Get(Language("cobol"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

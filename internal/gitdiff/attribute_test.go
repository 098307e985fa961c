package gitdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/treeline/internal/extract"
)

func def(name string, start, end int) extract.Definition {
	return extract.Definition{
		Name:      name,
		StartLine: start,
		EndLine:   end,
		Kind:      extract.KindFunction,
	}
}

func TestAttribute_NoIntersectingHunk(t *testing.T) {
	// A 9-line function with no intersecting hunks stays unannotated.
	defs := []extract.Definition{def("process", 1, 9)}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 40, OldCount: 2, NewStart: 40, NewCount: 3}}}

	Attribute(defs, fd)
	assert.Nil(t, defs[0].Diff)
}

func TestAttribute_NilFileDiff(t *testing.T) {
	defs := []extract.Definition{def("process", 1, 9)}
	Attribute(defs, nil)
	assert.Nil(t, defs[0].Diff)
}

func TestAttribute_WholeDefinitionAdded(t *testing.T) {
	defs := []extract.Definition{def("process", 1, 9)}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 0, OldCount: 0, NewStart: 1, NewCount: 9}}}

	Attribute(defs, fd)
	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, extract.StatusAdded, defs[0].Diff.Status)
	assert.Equal(t, 9, defs[0].Diff.Added)
	assert.Equal(t, 0, defs[0].Diff.Deleted)
}

func TestAttribute_UpdateInsideBody(t *testing.T) {
	// Net +1 line inside a 10-line body: the hunk sits fully inside the
	// range, so full hunk counts are attributed.
	defs := []extract.Definition{def("process", 5, 14)}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 7, OldCount: 1, NewStart: 7, NewCount: 2}}}

	Attribute(defs, fd)
	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, extract.StatusUpdated, defs[0].Diff.Status)
	assert.Equal(t, 2, defs[0].Diff.Added)
	assert.Equal(t, 1, defs[0].Diff.Deleted)
}

func TestAttribute_StraddlingHunkClipsAddedLines(t *testing.T) {
	// The hunk covers new lines 8..13 but the definition ends at 10:
	// only the overlapping portion (8, 9, 10) counts as added.
	defs := []extract.Definition{def("process", 5, 10)}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 8, OldCount: 2, NewStart: 8, NewCount: 6}}}

	Attribute(defs, fd)
	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, extract.StatusUpdated, defs[0].Diff.Status)
	assert.Equal(t, 3, defs[0].Diff.Added)
	assert.Equal(t, 2, defs[0].Diff.Deleted)
}

func TestAttribute_MultipleHunksSum(t *testing.T) {
	defs := []extract.Definition{def("process", 10, 40)}
	fd := &FileDiff{Hunks: []Hunk{
		{OldStart: 12, OldCount: 1, NewStart: 12, NewCount: 2},
		{OldStart: 29, OldCount: 0, NewStart: 30, NewCount: 3},
	}}

	Attribute(defs, fd)
	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, extract.StatusUpdated, defs[0].Diff.Status)
	assert.Equal(t, 5, defs[0].Diff.Added)
	assert.Equal(t, 1, defs[0].Diff.Deleted)
}

func TestAttribute_PureDeletionInsideBody(t *testing.T) {
	// A deletion hunk has an empty new-side range anchored at NewStart;
	// it still marks the definition as updated.
	defs := []extract.Definition{def("process", 5, 14)}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 8, OldCount: 3, NewStart: 7, NewCount: 0}}}

	Attribute(defs, fd)
	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, extract.StatusUpdated, defs[0].Diff.Status)
	assert.Equal(t, 0, defs[0].Diff.Added)
	assert.Equal(t, 3, defs[0].Diff.Deleted)
}

func TestAttribute_DefinitionsBeforeAndAfterHunks(t *testing.T) {
	defs := []extract.Definition{
		def("before", 1, 8),
		def("touched", 20, 30),
		def("after", 50, 60),
	}
	fd := &FileDiff{Hunks: []Hunk{{OldStart: 22, OldCount: 2, NewStart: 22, NewCount: 2}}}

	Attribute(defs, fd)
	assert.Nil(t, defs[0].Diff)
	require.NotNil(t, defs[1].Diff)
	assert.Nil(t, defs[2].Diff)
}

func TestAttribute_LinearSweepAcrossDefinitions(t *testing.T) {
	// Several definitions and several hunks in one pass; each hunk lands
	// on the right definition even though the sweep never restarts.
	defs := []extract.Definition{
		def("a", 1, 10),
		def("b", 15, 25),
		def("c", 30, 45),
	}
	fd := &FileDiff{Hunks: []Hunk{
		{OldStart: 2, OldCount: 0, NewStart: 3, NewCount: 1},
		{OldStart: 18, OldCount: 2, NewStart: 18, NewCount: 2},
		{OldStart: 40, OldCount: 1, NewStart: 41, NewCount: 4},
	}}

	Attribute(defs, fd)

	require.NotNil(t, defs[0].Diff)
	assert.Equal(t, 1, defs[0].Diff.Added)
	assert.Equal(t, 0, defs[0].Diff.Deleted)
	// A partial change to a definition that also existed before is an
	// update, even when the hunk itself has no old lines.
	assert.Equal(t, extract.StatusUpdated, defs[0].Diff.Status)

	require.NotNil(t, defs[1].Diff)
	assert.Equal(t, 2, defs[1].Diff.Added)
	assert.Equal(t, 2, defs[1].Diff.Deleted)

	require.NotNil(t, defs[2].Diff)
	assert.Equal(t, 4, defs[2].Diff.Added)
	assert.Equal(t, 1, defs[2].Diff.Deleted)
}

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/treeline/internal/extract"
	"github.com/jward/treeline/internal/lang"
)

func TestPython_FunctionsAndUnderscoreVisibility(t *testing.T) {
	src := `def process(items):
    total = 0
    for item in items:
        total += item.cost
    report(total)
    return total


def _validate(item):
    if item is None:
        raise ValueError("nil item")
    if item.cost < 0:
        raise ValueError("negative cost")
    return item
`
	defs := extractSource(t, lang.Python, src)

	proc := byName(defs, "process")
	require.NotNil(t, proc)
	assert.Equal(t, extract.KindFunction, proc.Kind)
	assert.Equal(t, lang.Public, proc.Visibility)

	val := byName(defs, "_validate")
	require.NotNil(t, val)
	assert.Equal(t, lang.Private, val.Visibility)
}

func TestPython_DecoratedDefinition(t *testing.T) {
	src := `@retry(times=3)
def fetch(url):
    conn = connect(url)
    data = conn.read()
    conn.close()
    parsed = parse(data)
    return parsed
`
	defs := extractSource(t, lang.Python, src)
	f := byName(defs, "fetch")
	require.NotNil(t, f)
	assert.Equal(t, extract.KindFunction, f.Kind)
}

func TestPython_Class(t *testing.T) {
	src := `class Pipeline:
    def __init__(self, stages):
        self.stages = stages

    def run(self, data):
        for stage in self.stages:
            data = stage(data)
        return data
`
	defs := extractSource(t, lang.Python, src)
	p := byName(defs, "Pipeline")
	require.NotNil(t, p)
	assert.Equal(t, extract.KindAggregate, p.Kind)
}

func TestPython_ModuleConstantsGatedByUnderscore(t *testing.T) {
	src := `TIMEOUT = 30
_retries = 3
`
	defs := extractSource(t, lang.Python, src)

	timeout := byName(defs, "TIMEOUT")
	require.NotNil(t, timeout)
	assert.Equal(t, extract.KindConst, timeout.Kind)
	assert.Equal(t, lang.Public, timeout.Visibility)

	assert.Nil(t, byName(defs, "_retries"))
}

func TestPython_TupleAssignmentEmitsOnlyExportedNames(t *testing.T) {
	// Two sibling bindings on one statement, only the second exported:
	// only the exported one is emitted.
	src := `_a, B = 1, 2
`
	defs := extractSource(t, lang.Python, src)
	require.Equal(t, []string{"B"}, names(defs))
	assert.Equal(t, extract.KindConst, defs[0].Kind)
}

func TestPython_NestedDefinitionsExcluded(t *testing.T) {
	src := `def outer(x):
    def inner(y):
        a = y + 1
        b = a * 2
        c = b - 3
        return c
    return inner(x)
`
	defs := extractSource(t, lang.Python, src)
	assert.NotNil(t, byName(defs, "outer"))
	assert.Nil(t, byName(defs, "inner"))
}

package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/ir/irtest"
)

// buildAndClassify builds the call graph and runs the attribute
// classifier over spec, returning both the planner Module and the
// underlying irtest.Module for name-to-ref lookups. It stops short of
// the implicit-arg analyser and unit-size engine so individual phases
// can be exercised in isolation, matching the teacher's habit of testing
// each SSA pass on a hand-built function rather than only end-to-end.
func buildAndClassify(t *testing.T, spec irtest.Spec) (*Module, *irtest.Module) {
	t.Helper()
	mod, err := irtest.Build(spec)
	require.NoError(t, err)
	m := NewModule()
	buildGraph(m, mod, mod, mod)
	classify(m, mod)
	return m, mod
}

func ref(t *testing.T, mod *irtest.Module, name string) ir.FunctionRef {
	t.Helper()
	r, ok := mod.Ref(name)
	require.True(t, ok, "no function named %q", name)
	return r
}

func node(t *testing.T, m *Module, mod *irtest.Module, name string) *FunctionNode {
	t.Helper()
	n := m.lookup(ref(t, mod, name))
	require.NotNil(t, n, "no node for %q", name)
	return n
}

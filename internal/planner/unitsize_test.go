package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelplan/planner/internal/ir/irtest"
)

// TestExpandUnit_linearChain is spec.md §8 scenario 1.
func TestExpandUnit_linearChain(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Size: 10, Entry: true},
			{Name: "B", Size: 20},
			{Name: "C", Size: 30},
			{Name: "D", Size: 40},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "B", Callee: "C"},
			{Caller: "C", Callee: "D"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")
	d := node(t, m, mod, "D")
	require.Equal(t, KernelEntry, a.Attribute)
	require.Equal(t, BestEffortInline, d.Attribute)

	expandUnit(m, a, true, DefaultConfig())

	require.Equal(t, 100, a.ExpandedSize)
	require.False(t, d.InMultipleUnit)
	require.False(t, m.hasRecursion)
}

// TestExpandUnit_diamond is spec.md §8 scenario 2.
func TestExpandUnit_diamond(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Size: 10, Entry: true},
			{Name: "B", Size: 20},
			{Name: "C", Size: 30},
			{Name: "D", Size: 40},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "C"},
			{Caller: "B", Callee: "D"},
			{Caller: "C", Callee: "D"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")

	expandUnit(m, a, true, DefaultConfig())
	require.Equal(t, 140, a.ExpandedSize)

	updateUnitSize(a)
	require.Equal(t, 100, a.UnitSize)
}

// TestExpandUnit_recursion is spec.md §8 scenario 3.
func TestExpandUnit_recursion(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Size: 10, Entry: true},
			{Name: "B", Size: 20},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "B", Callee: "A"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")

	expandUnit(m, a, true, DefaultConfig())

	require.True(t, m.hasRecursion)
}

// TestExpandUnit_sharedCalleeMarkedInMultipleUnit is spec.md §8 scenario 4.
func TestExpandUnit_sharedCalleeMarkedInMultipleUnit(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "K1", Size: 5, Entry: true},
			{Name: "K2", Size: 5, Entry: true},
			{Name: "F", Size: 25},
		},
		Calls: []irtest.Call{
			{Caller: "K1", Callee: "F"},
			{Caller: "K2", Callee: "F"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	k1 := node(t, m, mod, "K1")
	k2 := node(t, m, mod, "K2")
	f := node(t, m, mod, "F")

	expandUnit(m, k1, true, DefaultConfig())
	expandUnit(m, k2, true, DefaultConfig())

	require.True(t, f.InMultipleUnit)
}

// TestExpandUnit_idempotent checks spec.md §8's idempotence property:
// running the engine twice with no attribute change yields byte-identical
// results.
func TestExpandUnit_idempotent(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Size: 10, Entry: true},
			{Name: "B", Size: 20},
			{Name: "C", Size: 30},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "C"},
			{Caller: "B", Callee: "C"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")

	expandUnit(m, a, true, DefaultConfig())
	updateUnitSize(a)
	firstExpanded, firstUnit, firstMultiC := a.ExpandedSize, a.UnitSize, node(t, m, mod, "C").InMultipleUnit

	expandUnit(m, a, true, DefaultConfig())
	updateUnitSize(a)

	require.Equal(t, firstExpanded, a.ExpandedSize)
	require.Equal(t, firstUnit, a.UnitSize)
	require.Equal(t, firstMultiC, node(t, m, mod, "C").InMultipleUnit)
}

// TestExpandUnit_stackCallBoundaryExcluded confirms that, when
// ignoreStackCallBoundary is false, a stack-call callee is not folded
// into its caller's unit: it is neither expanded into A nor counted in A's
// total, and its own ExpandedSize is not computed by this pass.
func TestExpandUnit_stackCallBoundaryExcluded(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Size: 10, Entry: true},
			{Name: "B", Size: 20, ForceStackCall: true},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")
	b := node(t, m, mod, "B")
	require.Equal(t, StackCall, b.Attribute)

	expandUnit(m, a, false, DefaultConfig())

	require.Equal(t, 10, a.ExpandedSize)
	require.Zero(t, b.ExpandedSize)
}

package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelplan/planner/internal/ir/irtest"
)

// TestBuildGraph_edgeSymmetry is spec.md §3 invariant 1 / §8's "Edge
// symmetry" testable property: for every directed edge A->B with
// multiplicity m, B.callers[A] == A.callees[B] == m.
func TestBuildGraph_edgeSymmetry(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Entry: true},
			{Name: "B"},
			{Name: "C"},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "C"},
			{Caller: "B", Callee: "C"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")
	b := node(t, m, mod, "B")
	c := node(t, m, mod, "C")

	require.Equal(t, 2, a.CalleeCount(b))
	require.Equal(t, 2, callerCount(b, a), "symmetric via the index on b.callerEdges")
	require.Equal(t, 1, a.CalleeCount(c))
	require.Equal(t, 1, callerCount(c, a))
	require.Equal(t, 1, b.CalleeCount(c))
	require.Equal(t, 1, callerCount(c, b))

	require.Equal(t, 0, a.CalleeCount(a), "absent edges read as zero")
}

// callerCount returns n's recorded call-site multiplicity from caller, or 0
// if caller never calls n.
func callerCount(n, caller *FunctionNode) int {
	if i, ok := n.callerIndex[caller]; ok {
		return n.callerEdges[i].count
	}
	return 0
}

func TestBuildGraph_multiEdgeCollapsesToOneEdgeWithMultiplicity(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "A", Entry: true},
			{Name: "B"},
		},
		Calls: []irtest.Call{
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "B"},
			{Caller: "A", Callee: "B"},
		},
	}
	m, mod := buildAndClassify(t, spec)
	a := node(t, m, mod, "A")

	require.Len(t, a.Callees(), 1, "three call sites to the same callee form one edge")
	require.Equal(t, 3, a.CalleeCount(node(t, m, mod, "B")))
}

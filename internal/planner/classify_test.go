package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelplan/planner/internal/ir/irtest"
)

// TestClassify_priorityOrder exercises spec.md §4.2's first-matching-rule
// order: a function carrying both an entry marker and a no-inline
// attribute is classified as KernelEntry, not Trimmed.
func TestClassify_priorityOrder(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "Entry", Entry: true, NoInline: true, AlwaysInline: true},
			{Name: "Stack", ForceStackCall: true, NoInline: true},
			{Name: "NoInline", NoInline: true, AlwaysInline: true},
			{Name: "Always", AlwaysInline: true},
			{Name: "Default"},
		},
		// Every non-entry function needs a caller, or the post-build rule
		// would upgrade it to AddressTaken.
		Calls: []irtest.Call{
			{Caller: "Entry", Callee: "Stack"},
			{Caller: "Entry", Callee: "NoInline"},
			{Caller: "Entry", Callee: "Always"},
			{Caller: "Entry", Callee: "Default"},
		},
	}
	m, mod := buildAndClassify(t, spec)

	require.Equal(t, KernelEntry, node(t, m, mod, "Entry").Attribute)
	require.Equal(t, StackCall, node(t, m, mod, "Stack").Attribute)
	require.Equal(t, Trimmed, node(t, m, mod, "NoInline").Attribute)
	require.Equal(t, ForceInline, node(t, m, mod, "Always").Attribute)
	require.Equal(t, BestEffortInline, node(t, m, mod, "Default").Attribute)
}

// TestClassify_noCallersBecomesAddressTaken is spec.md §4.2's post-build
// upgrade rule and §3 invariant 3.
func TestClassify_noCallersBecomesAddressTaken(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "Entry", Entry: true},
			{Name: "Called"},
			{Name: "Orphan"},
		},
		Calls: []irtest.Call{
			{Caller: "Entry", Callee: "Called"},
		},
	}
	m, mod := buildAndClassify(t, spec)

	require.Equal(t, AddressTaken, node(t, m, mod, "Orphan").Attribute)
	require.Contains(t, m.addressTakenFuncs, node(t, m, mod, "Orphan"))
	require.Equal(t, BestEffortInline, node(t, m, mod, "Called").Attribute)
	require.NotContains(t, m.addressTakenFuncs, node(t, m, mod, "Entry"),
		"a kernel entry with no callers is not also address-taken")
}

func TestClassify_declaredOnlyFunctionsSkipped(t *testing.T) {
	spec := irtest.Spec{
		Functions: []irtest.Func{
			{Name: "Entry", Entry: true},
			{Name: "Extern", Declaration: true},
		},
		Calls: []irtest.Call{
			{Caller: "Entry", Callee: "Extern"},
		},
	}
	m, mod := buildAndClassify(t, spec)

	require.Nil(t, m.lookup(ref(t, mod, "Extern")), "declaration-only functions are never materialized as nodes")
	entry := node(t, m, mod, "Entry")
	require.Empty(t, entry.Callees(), "a call to an unmodeled declaration contributes no edge")
}

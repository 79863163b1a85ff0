package planner

import (
	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/scaled"
)

// Module is the module-level planner state described in spec.md §3. A
// Module is built fresh by Plan on every invocation; nothing about it is
// safe for concurrent use (spec.md §5).
type Module struct {
	pool     nodePool
	allNodes map[ir.FunctionRef]*FunctionNode
	// order records nodes in first-seen (ModuleView.Functions) order.
	// Every full-module scan iterates order, never allNodes directly —
	// ranging over a Go map would make attribute classification and
	// frequency seeding nondeterministic across runs, violating spec.md
	// §5's reproducibility guarantee.
	order []*FunctionNode

	kernelEntries     []*FunctionNode
	stackCallFuncs    []*FunctionNode
	addressTakenFuncs []*FunctionNode

	coldThreshold     scaled.Number
	hasRecursion      bool
	subroutineEnabled bool

	// visitStamp is a monotonically increasing generation counter used by
	// topological passes to mark nodes visited/queued without having to
	// clear a map between passes, unlike the teacher's
	// builder.clearBlkVisited which re-walks and deletes map entries.
	visitStamp int
}

// NewModule allocates a fresh, empty planner Module, ready for Run.
func NewModule() *Module {
	return &Module{
		pool:              newNodePool(),
		allNodes:          make(map[ir.FunctionRef]*FunctionNode),
		coldThreshold:     scaled.Largest(),
		subroutineEnabled: true,
	}
}

// Reset prepares m for a fresh, independent planner invocation, reusing
// pooled FunctionNode storage rather than reallocating it (spec.md §3
// lifecycle: "entering a new invocation clears and deallocates all nodes
// from the previous one"). The root Planner calls it before every
// invocation at either AnalysisLevel, since Run expects a fresh Module.
func (m *Module) Reset() {
	m.pool.reset()
	for k := range m.allNodes {
		delete(m.allNodes, k)
	}
	m.order = m.order[:0]
	m.kernelEntries = m.kernelEntries[:0]
	m.stackCallFuncs = m.stackCallFuncs[:0]
	m.addressTakenFuncs = m.addressTakenFuncs[:0]
	m.coldThreshold = scaled.Largest()
	m.hasRecursion = false
	m.subroutineEnabled = true
	m.visitStamp = 0
}

// nodeFor returns the existing node for f, allocating one on first use.
func (m *Module) nodeFor(f ir.FunctionRef) *FunctionNode {
	if n, ok := m.allNodes[f]; ok {
		return n
	}
	n := m.pool.allocate()
	n.Ref = f
	m.allNodes[f] = n
	m.order = append(m.order, n)
	return n
}

// lookup returns the node for f without allocating, or nil if absent
// (e.g. f is declaration-only and was skipped by the call-graph builder).
func (m *Module) lookup(f ir.FunctionRef) *FunctionNode {
	return m.allNodes[f]
}

// unitRoots returns every unit root in the canonical order used by the
// partitioner and trimmer (spec.md §4.7/§4.8): kernel entries, then
// stack-call functions, then address-taken functions. The slice is a
// fresh copy so callers may safely append to stackCallFuncs while
// iterating an earlier snapshot (spec.md §9 "Mutation under iteration").
func (m *Module) unitRoots() []*FunctionNode {
	roots := make([]*FunctionNode, 0, len(m.kernelEntries)+len(m.stackCallFuncs)+len(m.addressTakenFuncs))
	roots = append(roots, m.kernelEntries...)
	roots = append(roots, m.stackCallFuncs...)
	roots = append(roots, m.addressTakenFuncs...)
	return roots
}

// kernelAndAddressTakenRoots returns kernel entries followed by
// address-taken functions, the root set used by the kernel-total trimming
// pass (spec.md §4.9 step 5, ControlKernelTotalSize branch).
func (m *Module) kernelAndAddressTakenRoots() []*FunctionNode {
	roots := make([]*FunctionNode, 0, len(m.kernelEntries)+len(m.addressTakenFuncs))
	roots = append(roots, m.kernelEntries...)
	roots = append(roots, m.addressTakenFuncs...)
	return roots
}

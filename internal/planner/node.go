package planner

import (
	"fmt"

	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/scaled"
)

// edge records a directed call edge's multiplicity, and the basic block of
// each individual call site, alongside the callee (or caller) it points
// to. callees/callers are kept as ordered slices plus an index map rather
// than a bare Go map, so iteration order is deterministic across runs
// (spec.md §5's ordering guarantees) — ranging over a map would not be.
// blocks is parallel to count (one entry per call site) and lets the
// frequency estimator (§4.4) weight each call site by its own block's
// frequency rather than the caller's callees as a whole.
type edge struct {
	node   *FunctionNode
	count  int
	blocks []ir.BlockRef
}

// FunctionNode is the per-function analysis state described in spec.md
// §3. One is created per defined function at planner entry and never
// reallocated until the next invocation's Module.Reset.
type FunctionNode struct {
	Ref         ir.FunctionRef
	InitialSize int

	UnitSize     int
	ExpandedSize int
	tmpSize      int

	Attribute Attribute

	StaticFreq scaled.Number

	HasImplicitArg bool
	InMultipleUnit bool

	calleeEdges []edge
	calleeIndex map[*FunctionNode]int
	callerEdges []edge
	callerIndex map[*FunctionNode]int

	// scratch fields reused across topological passes (§4.5); never
	// observed outside a single pass.
	pending int
	visited int // generation stamp, compared against Module.visitStamp
	queued  bool
}

// reset clears a FunctionNode for reuse by the pool, matching the
// teacher's basicBlock.reset idiom of reusable, page-pooled graph nodes.
func (n *FunctionNode) reset() {
	*n = FunctionNode{
		calleeEdges: n.calleeEdges[:0],
		calleeIndex: resetIndex(n.calleeIndex),
		callerEdges: n.callerEdges[:0],
		callerIndex: resetIndex(n.callerIndex),
	}
}

func resetIndex(m map[*FunctionNode]int) map[*FunctionNode]int {
	if m == nil {
		return make(map[*FunctionNode]int)
	}
	for k := range m {
		delete(m, k)
	}
	return m
}

func (n *FunctionNode) debugName() string {
	return fmt.Sprintf("func#%d", n.Ref)
}

// addCallee records one call site from n to callee at block, incrementing
// the edge's multiplicity and appending the call site's block (spec.md
// §4.1).
func (n *FunctionNode) addCallee(callee *FunctionNode, block ir.BlockRef) {
	if n.calleeIndex == nil {
		n.calleeIndex = make(map[*FunctionNode]int)
	}
	if i, ok := n.calleeIndex[callee]; ok {
		n.calleeEdges[i].count++
		n.calleeEdges[i].blocks = append(n.calleeEdges[i].blocks, block)
		return
	}
	n.calleeIndex[callee] = len(n.calleeEdges)
	n.calleeEdges = append(n.calleeEdges, edge{node: callee, count: 1, blocks: []ir.BlockRef{block}})
}

// addCaller records one call site from caller to n at block, symmetric to
// addCallee (spec.md §3 invariant 1).
func (n *FunctionNode) addCaller(caller *FunctionNode, block ir.BlockRef) {
	if n.callerIndex == nil {
		n.callerIndex = make(map[*FunctionNode]int)
	}
	if i, ok := n.callerIndex[caller]; ok {
		n.callerEdges[i].count++
		n.callerEdges[i].blocks = append(n.callerEdges[i].blocks, block)
		return
	}
	n.callerIndex[caller] = len(n.callerEdges)
	n.callerEdges = append(n.callerEdges, edge{node: caller, count: 1, blocks: []ir.BlockRef{block}})
}

// Callees returns the distinct callees of n in edge-insertion order, each
// paired with its call-site multiplicity.
func (n *FunctionNode) Callees() []edge { return n.calleeEdges }

// Callers returns the distinct callers of n in edge-insertion order, each
// paired with its call-site multiplicity.
func (n *FunctionNode) Callers() []edge { return n.callerEdges }

// CalleeCount returns n's call-site multiplicity to callee, or 0 if n
// never calls callee.
func (n *FunctionNode) CalleeCount(callee *FunctionNode) int {
	if i, ok := n.calleeIndex[callee]; ok {
		return n.calleeEdges[i].count
	}
	return 0
}

// IsLeaf reports whether n calls no other function, matching the
// original's FunctionNode::isLeaf.
func (n *FunctionNode) IsLeaf() bool { return len(n.calleeEdges) == 0 }

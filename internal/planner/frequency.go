package planner

import (
	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/scaled"
)

// Seed counts from spec.md §4.4.
var (
	seedInline  = scaled.FromInt(15)
	seedCold    = scaled.FromInt(5)
	seedLocal   = scaled.Zero
	seedDefault = scaled.FromInt(10)
)

// maxFixedPointIterations bounds the relaxation of frequency estimates
// within a recursive SCC, matching spec.md §4.4's "bounded propagation
// budget" — the estimate is synthetic and best-effort, so an unbounded
// fixed point is not required for correctness, only for termination.
const maxFixedPointIterations = 8

// seedFreq returns a function's initial synthetic execution count, before
// any propagation (spec.md §4.4). The planner's collaborator interfaces
// only expose call-site users (spec.md §1 Non-goals: "does not model
// indirect calls precisely"), so "no non-call users" is read simply as
// "has local linkage" — any non-call use would be invisible to the
// planner regardless, making a more literal check unobservable through
// this interface boundary (see DESIGN.md).
func seedFreq(attrs ir.AttributeOracle, f ir.FunctionRef) scaled.Number {
	switch {
	case attrs.HasAlwaysInline(f) || attrs.HasInlineHint(f):
		return seedInline
	case attrs.HasLocalLinkage(f):
		return seedLocal
	case attrs.HasCold(f) || attrs.HasNoInline(f):
		return seedCold
	default:
		return seedDefault
	}
}

// estimateFrequencies computes every defined function's static_freq by
// seeding and then propagating along the call graph (spec.md §4.4).
func estimateFrequencies(m *Module, freqs ir.BlockFrequencyProvider, attrs ir.AttributeOracle) {
	acc := make(map[*FunctionNode]scaled.Number, len(m.order))
	pending := make(map[*FunctionNode]int, len(m.order))
	for _, n := range m.order {
		acc[n] = seedFreq(attrs, n.Ref)
		pending[n] = len(n.callerEdges)
	}

	queue := make([]*FunctionNode, 0, len(m.order))
	for _, n := range m.order {
		if pending[n] == 0 {
			queue = append(queue, n)
		}
	}

	finalized := make(map[*FunctionNode]bool, len(m.order))
	propagate := func(n *FunctionNode) {
		n.StaticFreq = acc[n]
		finalized[n] = true
		entryFreq := freqs.EntryFrequency(n.Ref)
		if entryFreq.IsZero() {
			panic("BUG: zero entry frequency for " + n.debugName())
		}
		for _, e := range n.calleeEdges {
			callee := e.node
			if finalized[callee] {
				continue
			}
			contribution := callSiteContribution(n, freqs, entryFreq, e.blocks)
			acc[callee] = scaled.Add(acc[callee], contribution)
			if p, ok := pending[callee]; ok && p > 0 {
				pending[callee]--
				if pending[callee] == 0 {
					queue = append(queue, callee)
				}
			}
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if finalized[n] {
			continue
		}
		propagate(n)
	}

	// Whatever remains has unresolved callers — a recursive SCC. Relax a
	// bounded number of times using the accumulated (not yet finalized)
	// values, then finalize with whatever was reached.
	var remaining []*FunctionNode
	for _, n := range m.order {
		if !finalized[n] {
			remaining = append(remaining, n)
		}
	}
	if len(remaining) > 0 {
		m.hasRecursion = true
		for iter := 0; iter < maxFixedPointIterations; iter++ {
			next := make(map[*FunctionNode]scaled.Number, len(remaining))
			for _, n := range remaining {
				next[n] = acc[n]
			}
			for _, n := range remaining {
				// callSiteContribution reads caller.StaticFreq; refresh it
				// from this iteration's accumulator so relaxation actually
				// propagates instead of multiplying by a stale zero.
				n.StaticFreq = acc[n]
				entryFreq := freqs.EntryFrequency(n.Ref)
				if entryFreq.IsZero() {
					continue
				}
				for _, e := range n.calleeEdges {
					if finalized[e.node] {
						continue
					}
					contribution := callSiteContribution(n, freqs, entryFreq, e.blocks)
					next[e.node] = scaled.Add(next[e.node], contribution)
				}
			}
			acc = mergeAcc(acc, next)
		}
		for _, n := range remaining {
			n.StaticFreq = acc[n]
			finalized[n] = true
		}
	}
}

func mergeAcc(acc, next map[*FunctionNode]scaled.Number) map[*FunctionNode]scaled.Number {
	for n, v := range next {
		acc[n] = v
	}
	return acc
}

// callSiteContribution computes the count contributed to a callee by every
// call site from caller recorded in blocks: count(caller) * freq(BB) /
// entry_freq(caller) (spec.md §4.4), evaluated per call site at its own
// block (matching the original's GetCallSiteProfCount, which looks up
// BFI.getBlockFreq(CSBB) for the block containing that specific call
// instruction) and summed, rather than approximated by an average over the
// caller's blocks.
func callSiteContribution(caller *FunctionNode, freqs ir.BlockFrequencyProvider, entryFreq scaled.Number, blocks []ir.BlockRef) scaled.Number {
	var total scaled.Number
	for _, b := range blocks {
		rel := scaled.Div(freqs.BlockFrequency(caller.Ref, b), entryFreq)
		total = scaled.Add(total, scaled.Mul(caller.StaticFreq, rel))
	}
	return total
}

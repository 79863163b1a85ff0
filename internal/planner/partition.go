package planner

import "github.com/kernelplan/planner/internal/scaled"

// partitionModule is spec.md §4.7: for every current unit root, in turn,
// walk its unit bottom-up and promote eligible cold oversized callees to
// stack-call boundaries. Promotion appends to m.stackCallFuncs, which
// grows the root list; roots are snapshotted up front (spec.md §9
// "Mutation under iteration") so a promoted node is picked up as its own
// root only on the next driver phase, never re-entered within this call.
func partitionModule(m *Module, cfg Config) {
	for _, root := range m.unitRoots() {
		partitionUnit(m, root, cfg)
	}
}

// partitionUnit walks root's unit leaf-to-root, testing each non-root
// node against the promotion predicate of spec.md §4.7.
func partitionUnit(m *Module, root *FunctionNode, cfg Config) {
	m.visitStamp++
	stamp := m.visitStamp
	unit := delimitUnit(root, stamp, false)

	leaves := make([]*FunctionNode, 0, len(unit))
	for _, n := range unit {
		if n.pending == 0 {
			leaves = append(leaves, n)
		}
	}

	for len(leaves) > 0 {
		n := leaves[0]
		leaves = leaves[1:]

		// tmpSize was seeded to InitialSize by delimitUnit and has since
		// accumulated every already-processed, non-promoted callee's
		// contribution: the "summed-from-below" conservative value.
		n.UnitSize = n.tmpSize

		if n != root && shouldPromoteToStackCall(m, n, cfg) {
			n.setStackCall()
			m.stackCallFuncs = append(m.stackCallFuncs, n)
		}

		for _, ce := range n.Callers() {
			c := ce.node
			if c.visited != stamp {
				continue
			}
			c.pending--
			if n.Attribute != StackCall {
				c.tmpSize += n.UnitSize * c.CalleeCount(n)
			}
			if c.pending == 0 {
				leaves = append(leaves, c)
			}
		}
	}
}

// shouldPromoteToStackCall is the conjunction of spec.md §4.7's four
// promotion conditions.
func shouldPromoteToStackCall(m *Module, n *FunctionNode, cfg Config) bool {
	if n.Attribute != BestEffortInline && n.Attribute != Trimmed {
		return false
	}
	if n.UnitSize <= cfg.UnitSizeThreshold {
		return false
	}
	if computeUnitSizeBFS(n) <= cfg.UnitSizeThreshold {
		return false
	}
	if cfg.StaticProfilingForPartitioning && !scaled.Less(n.StaticFreq, m.coldThreshold) {
		return false
	}
	return true
}

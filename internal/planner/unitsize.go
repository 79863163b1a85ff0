package planner

// expandUnit performs the bottom-up unit-size computation rooted at root
// (spec.md §4.5), writing the result into root.ExpandedSize. Every node
// reachable under the ignoreStackCallBoundary rule gets its ExpandedSize,
// InMultipleUnit, and (via the expand step) HasImplicitArg refreshed;
// callers outside root's unit are left untouched.
func expandUnit(m *Module, root *FunctionNode, ignoreStackCallBoundary bool, cfg Config) {
	m.visitStamp++
	stamp := m.visitStamp

	unit := delimitUnit(root, stamp, ignoreStackCallBoundary)
	total := reduceUnit(m, unit, stamp, cfg)
	root.ExpandedSize = total
}

// delimitUnit is spec.md §4.5 step 1: a top-down traversal from root that
// includes a callee iff it hasn't been seen and either the stack-call
// boundary is being ignored or the callee isn't a stack-call root. Every
// included node's pending count is the number of its own callees that also
// fall inside the unit.
func delimitUnit(root *FunctionNode, stamp int, ignoreStackCallBoundary bool) []*FunctionNode {
	root.visited = stamp
	unit := []*FunctionNode{root}
	queue := []*FunctionNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		n.tmpSize = n.InitialSize
		n.pending = 0
		n.InMultipleUnit = false
		for _, e := range n.Callees() {
			callee := e.node
			if !ignoreStackCallBoundary && callee.Attribute == StackCall {
				continue
			}
			n.pending++
			if callee.visited != stamp {
				callee.visited = stamp
				unit = append(unit, callee)
				queue = append(queue, callee)
			}
		}
	}
	return unit
}

// reduceUnit is spec.md §4.5 steps 2-3: pop leaves (pending == 0) in FIFO
// order, accumulate the total size of every node that will not be
// inlined away, and perform the expand step on each in-unit caller of a
// node that will be inlined. Any node never reached this way marks the
// unit as recursive.
func reduceUnit(m *Module, unit []*FunctionNode, stamp int, cfg Config) int {
	leaves := make([]*FunctionNode, 0, len(unit))
	for _, n := range unit {
		if n.pending == 0 {
			leaves = append(leaves, n)
		}
	}

	total := 0
	processed := 0
	for len(leaves) > 0 {
		n := leaves[0]
		leaves = leaves[1:]
		processed++

		n.ExpandedSize = n.tmpSize
		if !n.Attribute.WillBeInlined() {
			total += n.ExpandedSize
		}

		for _, ce := range n.Callers() {
			c := ce.node
			if c.visited != stamp {
				n.InMultipleUnit = true
				continue
			}
			c.pending--
			if n.Attribute.WillBeInlined() {
				c.tmpSize += n.ExpandedSize * c.CalleeCount(n)
				if n.HasImplicitArg && !c.HasImplicitArg {
					c.HasImplicitArg = true
					promoteForImplicitArg(c, cfg)
				}
			}
			if c.pending == 0 {
				leaves = append(leaves, c)
			}
		}
	}

	if processed < len(unit) {
		m.hasRecursion = true
	}
	return total
}

// updateUnitSize is spec.md §4.5's companion routine: a top-down BFS from
// root summing InitialSize over every node reachable without crossing a
// stack-call boundary, written into root.UnitSize.
func updateUnitSize(root *FunctionNode) {
	root.UnitSize = computeUnitSizeBFS(root)
}

// computeUnitSizeBFS is the exact BFS sum behind updateUnitSize, exposed
// separately so the partitioner (spec.md §4.7 condition 3) can recompute
// it for a candidate node without clobbering the summed-from-below value
// already held in that node's UnitSize.
func computeUnitSizeBFS(root *FunctionNode) int {
	visited := map[*FunctionNode]bool{root: true}
	queue := []*FunctionNode{root}
	sum := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		sum += n.InitialSize
		for _, e := range n.Callees() {
			callee := e.node
			if callee.Attribute == StackCall {
				continue
			}
			if !visited[callee] {
				visited[callee] = true
				queue = append(queue, callee)
			}
		}
	}
	return sum
}

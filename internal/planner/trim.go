package planner

import (
	"sort"

	"github.com/kernelplan/planner/internal/scaled"
)

// trimRoots is spec.md §4.8, run once over a given root set and threshold:
// roots are visited in descending ExpandedSize order, re-expanded, and
// trimmed one candidate at a time until each fits or runs out of
// candidates.
func trimRoots(m *Module, roots []*FunctionNode, threshold int, ignoreStackCallBoundary bool, cfg Config) {
	sorted := make([]*FunctionNode, len(roots))
	copy(sorted, roots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExpandedSize > sorted[j].ExpandedSize
	})
	for _, root := range sorted {
		trimRoot(m, root, threshold, ignoreStackCallBoundary, cfg)
	}
}

func trimRoot(m *Module, root *FunctionNode, threshold int, ignoreStackCallBoundary bool, cfg Config) {
	expandUnit(m, root, ignoreStackCallBoundary, cfg)
	if root.ExpandedSize <= threshold {
		return
	}

	candidates := collectTrimCandidates(root, ignoreStackCallBoundary, m.coldThreshold, cfg)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].InitialSize < candidates[j].InitialSize
	})

	for len(candidates) > 0 && root.ExpandedSize > threshold {
		last := len(candidates) - 1
		n := candidates[last]
		candidates = candidates[:last]
		n.setTrimmed()
		expandUnit(m, root, ignoreStackCallBoundary, cfg)
	}
}

// collectTrimCandidates is spec.md §4.8 step 3: a top-down BFS from root,
// stopping at stack-call boundaries unless the caller allows crossing
// them, collecting every good-to-trim node.
func collectTrimCandidates(root *FunctionNode, ignoreStackCallBoundary bool, coldThreshold scaled.Number, cfg Config) []*FunctionNode {
	visited := map[*FunctionNode]bool{root: true}
	queue := []*FunctionNode{root}
	var candidates []*FunctionNode
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n != root && isGoodToTrim(n, coldThreshold, cfg) {
			candidates = append(candidates, n)
		}
		for _, e := range n.Callees() {
			callee := e.node
			if !ignoreStackCallBoundary && callee.Attribute == StackCall {
				continue
			}
			if !visited[callee] {
				visited[callee] = true
				queue = append(queue, callee)
			}
		}
	}
	return candidates
}

// isGoodToTrim is spec.md §4.8 step 3's per-node predicate.
func isGoodToTrim(n *FunctionNode, coldThreshold scaled.Number, cfg Config) bool {
	if n.Attribute != BestEffortInline {
		return false
	}
	if cfg.ForceInlineExternalFunctions && n.InMultipleUnit {
		return false
	}
	if n.InitialSize > cfg.ControlInlineTinySize {
		return true
	}
	if !cfg.StaticProfilingForInliningTrimming {
		return false
	}
	return scaled.Less(n.StaticFreq, coldThreshold)
}

package planner

// nodePoolPageSize is the page size of the nodePool below, chosen the same
// way the teacher's generic pool does: large enough to amortize
// allocation, small enough that a module with few functions doesn't pay
// for a huge page.
const nodePoolPageSize = 128

// nodePool is a page-based allocator for FunctionNode, adapted from the
// teacher's wazevoapi.Pool[T] generic pool. Nodes are allocated once per
// planner invocation and reused (via reset) on the next one, matching
// spec.md §3's lifecycle: "nodes are created once at planner entry, never
// destroyed or reallocated until the planner's clear() at the next
// invocation."
type nodePool struct {
	pages          []*[nodePoolPageSize]FunctionNode
	allocated, idx int
}

func newNodePool() nodePool {
	p := nodePool{}
	p.reset()
	return p
}

// allocate returns a fresh *FunctionNode, reusing pooled storage from a
// prior invocation when available.
func (p *nodePool) allocate() *FunctionNode {
	if p.idx == nodePoolPageSize {
		if len(p.pages) == cap(p.pages) {
			p.pages = append(p.pages, new([nodePoolPageSize]FunctionNode))
		} else {
			i := len(p.pages)
			p.pages = p.pages[:i+1]
			if p.pages[i] == nil {
				p.pages[i] = new([nodePoolPageSize]FunctionNode)
			}
		}
		p.idx = 0
	}
	n := &p.pages[len(p.pages)-1][p.idx]
	p.idx++
	p.allocated++
	return n
}

// reset clears the pool for reuse across planner invocations, releasing
// no memory (so a second invocation on a similarly-sized module allocates
// nothing new).
func (p *nodePool) reset() {
	for _, page := range p.pages {
		for i := range page {
			page[i].reset()
		}
	}
	p.pages = p.pages[:0]
	p.idx = nodePoolPageSize
	p.allocated = 0
}

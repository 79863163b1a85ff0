package planner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodePool_allocateAcrossPageBoundary(t *testing.T) {
	p := newNodePool()
	first := p.allocate()
	require.NotNil(t, first)

	for i := 1; i < nodePoolPageSize; i++ {
		p.allocate()
	}
	// One more allocation must cross into a freshly grown page rather
	// than reusing the same backing array slot.
	overflow := p.allocate()
	require.NotNil(t, overflow)
	require.NotSame(t, first, overflow)
	require.Equal(t, nodePoolPageSize+1, p.allocated)
}

func TestNodePool_resetReusesPages(t *testing.T) {
	p := newNodePool()
	n := p.allocate()
	n.InitialSize = 42
	n.Attribute = ForceInline

	p.reset()

	reused := p.allocate()
	require.Same(t, n, reused, "reset must reuse the same backing storage")
	require.Zero(t, reused.InitialSize, "reset must clear prior field values")
	require.Equal(t, BestEffortInline, reused.Attribute)
}

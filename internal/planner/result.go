package planner

import "github.com/kernelplan/planner/internal/ir"

// MaxExpandedSize returns the largest ExpandedSize across kernel entries
// (spec.md §6).
func (m *Module) MaxExpandedSize() int {
	max := 0
	for _, n := range m.kernelEntries {
		if n.ExpandedSize > max {
			max = n.ExpandedSize
		}
	}
	return max
}

// ExpandedSizeOf returns f's ExpandedSize and true, or (0, false) if f was
// never observed as a defined function (spec.md §6: "or 'unknown/largest'
// if not present" — the caller decides what "largest" means for its own
// purposes; the boolean return makes "not present" unambiguous rather than
// overloading a sentinel integer).
func (m *Module) ExpandedSizeOf(f ir.FunctionRef) (int, bool) {
	n := m.lookup(f)
	if n == nil {
		return 0, false
	}
	return n.ExpandedSize, true
}

// MaxUnitSize returns the largest UnitSize across every unit root
// (spec.md §6).
func (m *Module) MaxUnitSize() int {
	max := 0
	for _, n := range m.unitRoots() {
		if n.UnitSize > max {
			max = n.UnitSize
		}
	}
	return max
}

// SubroutineEnabled reports whether subroutine (stack-call) emission
// should remain enabled for this module (spec.md §4.9 steps 4 and 6).
func (m *Module) SubroutineEnabled() bool { return m.subroutineEnabled }

// IsTrimmed reports whether f was assigned the Trimmed disposition.
func (m *Module) IsTrimmed(f ir.FunctionRef) bool {
	n := m.lookup(f)
	return n != nil && n.Attribute == Trimmed
}

// IsStackCallAssigned reports whether f was assigned the StackCall
// disposition (whether by the attribute classifier or by the
// partitioner).
func (m *Module) IsStackCallAssigned(f ir.FunctionRef) bool {
	n := m.lookup(f)
	return n != nil && n.Attribute == StackCall
}

// OnlyCalledOnce implements spec.md §6/§9's two-branch query, resolved per
// SPEC_FULL.md's reading of original_source/: the first branch (exactly
// one caller, multiplicity one, not self-recursive) short-circuits to
// true without consulting attributes at all; only when it fails does the
// second branch apply ("every caller is a kernel entry, each calling at
// most once"), and a function with no callers at all satisfies neither
// branch.
func (m *Module) OnlyCalledOnce(f ir.FunctionRef) bool {
	n := m.lookup(f)
	if n == nil {
		return false
	}
	callers := n.Callers()
	if len(callers) == 0 {
		return false
	}
	if len(callers) == 1 && callers[0].count == 1 && callers[0].node != n {
		return true
	}
	for _, c := range callers {
		if c.node.Attribute != KernelEntry || c.count > 1 {
			return false
		}
	}
	return true
}

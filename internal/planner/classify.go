package planner

import "github.com/kernelplan/planner/internal/ir"

// classify assigns the initial attribute to every defined function
// (spec.md §4.2), then upgrades any node with no call-site callers (and
// that isn't a kernel entry) to AddressTaken.
func classify(m *Module, attrs ir.AttributeOracle) {
	for _, n := range m.order {
		switch {
		case attrs.IsEntry(n.Ref):
			n.setKernelEntry()
			m.kernelEntries = append(m.kernelEntries, n)
		case attrs.HasForceStackCall(n.Ref):
			n.setStackCall()
		case attrs.HasNoInline(n.Ref):
			n.setTrimmed()
		case attrs.HasAlwaysInline(n.Ref):
			n.setForceInline()
		default:
			// BestEffortInline is the zero value; nothing to do.
		}
	}

	for _, n := range m.order {
		if n.Attribute != KernelEntry && len(n.callerEdges) == 0 {
			n.setAddressTaken()
			m.addressTakenFuncs = append(m.addressTakenFuncs, n)
		}
	}
}

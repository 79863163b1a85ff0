package planner

import "github.com/kernelplan/planner/internal/ir"

// buildGraph materialises FunctionNode for every defined function and
// wires callee/caller edges from call-site users (spec.md §4.1).
// Declared-only functions are skipped entirely; non-call-site users are
// not observed at all (ir.CallSiteEnumerator only reports call sites).
func buildGraph(m *Module, view ir.ModuleView, probe ir.SizeProbe, calls ir.CallSiteEnumerator) {
	for _, f := range view.Functions() {
		if !view.HasBody(f) {
			continue
		}
		n := m.nodeFor(f)
		n.InitialSize = probe.Size(f)
	}

	for _, f := range view.Functions() {
		if !view.HasBody(f) {
			continue
		}
		callee := m.lookup(f)
		for _, cs := range calls.CallersOf(f) {
			caller := m.lookup(cs.Caller)
			if caller == nil {
				// The caller is declaration-only or otherwise unmodeled;
				// such a "caller" cannot itself be compiled, so the edge
				// is not representable and is ignored.
				continue
			}
			caller.addCallee(callee, cs.Block)
			callee.addCaller(caller, cs.Block)
		}
	}
}

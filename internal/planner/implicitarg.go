package planner

import "github.com/kernelplan/planner/internal/ir"

// intrinsicQueries is the closed set of intrinsic query names that mark a
// function as reaching an implicit argument (spec.md §4.3).
var intrinsicQueries = map[string]struct{}{
	"local-id-x":            {},
	"local-id-y":            {},
	"local-id-z":            {},
	"group-id":              {},
	"local-thread-id":       {},
	"global-offset":         {},
	"global-size":           {},
	"local-size":            {},
	"work-dim":              {},
	"num-groups":            {},
	"enqueued-local-size":   {},
	"stage-in-grid-origin":  {},
	"stage-in-grid-size":    {},
	"sync-buffer":           {},
}

// isIntrinsicQuery reports whether name is one of the closed set of
// intrinsic queries.
func isIntrinsicQuery(name string) bool {
	_, ok := intrinsicQueries[name]
	return ok
}

// analyseImplicitArgs scans every defined function for calls to an
// intrinsic query, setting HasImplicitArg and applying the configured
// promotion flags (spec.md §4.3).
func analyseImplicitArgs(m *Module, view ir.ModuleView, cfg Config) {
	for _, n := range m.order {
		hasImplicit := false
		for _, name := range view.IntrinsicCalls(n.Ref) {
			if isIntrinsicQuery(name) {
				hasImplicit = true
				break
			}
		}
		if !hasImplicit {
			continue
		}
		n.HasImplicitArg = true
		promoteForImplicitArg(n, cfg)
	}
}

// promoteForImplicitArg applies the promotion rules of spec.md §4.3 to a
// node that has just been marked HasImplicitArg, whether directly (by
// analyseImplicitArgs) or via propagation through notional inline
// expansion (§4.5 step 2, called from expandStep).
func promoteForImplicitArg(n *FunctionNode, cfg Config) {
	if n.Attribute == KernelEntry || n.Attribute == AddressTaken || n.Attribute == Trimmed {
		// "Trimmer safety" (spec.md §8): an already-trimmed node's
		// attribute is never changed again, even by implicit-arg
		// propagation discovered after the trim decision.
		return
	}
	if n.Attribute == StackCall {
		if cfg.ForceInlineStackCallWithImplArg {
			n.setForceInline()
		}
		return
	}
	if cfg.ControlInlineImplicitArgs {
		n.setForceInline()
	}
}

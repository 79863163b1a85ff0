// Package planner is the public entry point of the function-size
// estimation and inlining/partitioning planner (spec.md §1). It owns no
// mechanism of its own — internal/planner implements every phase of the
// state machine described in spec.md §4.9 — and exists only to give the
// rest of a compiler pipeline a small, stable surface to depend on,
// mirroring the teacher repository's split between its top-level
// `wazero` package and `internal/engine/wazevo`.
package planner

import (
	"context"
	"fmt"

	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/planner"
)

// Config is the planner's configuration registry (spec.md §6), re-exported
// verbatim from internal/planner so callers never need to import the
// internal package directly.
type Config = planner.Config

// ThresholdMode selects the cold-function threshold distribution model
// (spec.md §4.6).
type ThresholdMode = planner.ThresholdMode

const (
	ThresholdNormal         = planner.ThresholdNormal
	ThresholdLongTail       = planner.ThresholdLongTail
	ThresholdAveragePercent = planner.ThresholdAveragePercent
)

// AnalysisLevel distinguishes a first, whole-module invocation from a
// later re-invocation over a narrower scope (SPEC_FULL.md, supplemented
// from original_source/).
type AnalysisLevel = planner.AnalysisLevel

const (
	LevelModule        = planner.LevelModule
	LevelPostPartition = planner.LevelPostPartition
)

// DefaultConfig returns reasonable defaults for every tunable.
func DefaultConfig() Config { return planner.DefaultConfig() }

// Collaborators bundles every external interface the planner reads from a
// compute module during one invocation (spec.md §6's size probe,
// attribute oracle, block-frequency provider, call-site enumerator, and
// module view).
type Collaborators = planner.Collaborators

// Planner owns the module-level analysis state across invocations so
// that FunctionNode storage is pooled and reused rather than reallocated
// on every call (spec.md §3 lifecycle), the way a single long-lived
// *wazevo.Engine reuses its pools across compilations in the teacher.
// A Planner is not safe for concurrent use (spec.md §5).
type Planner struct {
	m *planner.Module
}

// New returns a Planner with empty, freshly allocated state.
func New() *Planner {
	return &Planner{m: planner.NewModule()}
}

// Plan runs the full state machine of spec.md §4.9 over c at
// AnalysisLevel LevelModule, resetting any state left by a prior Plan
// call on the same Planner (spec.md §3: "entering a new invocation clears
// and deallocates all nodes from the previous one"). The returned Result
// is a live view over p's internal state and is only valid until the next
// call to Plan or PlanAt.
//
// ctx is accepted for cancellation-of-the-surrounding-compile-job
// plumbing consistency with the teacher's exported APIs; per spec.md §5
// the planner itself never suspends, so ctx is only checked once at
// entry.
func (p *Planner) Plan(ctx context.Context, c Collaborators, cfg Config) (*Result, error) {
	return p.PlanAt(ctx, c, cfg, LevelModule)
}

// PlanAt runs the state machine at a specific AnalysisLevel, supporting
// the original's recursive re-invocation with a halved subroutine
// threshold and a skipped Reduce phase (SPEC_FULL.md). At either level p's
// state is reset first, exactly like Plan, and the graph is rebuilt from c.
func (p *Planner) PlanAt(ctx context.Context, c Collaborators, cfg Config, level AnalysisLevel) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("planner: context already done: %w", err)
	}
	p.m.Reset()
	planner.Run(p.m, c, cfg, level)
	return &Result{m: p.m}, nil
}

// Result is the query interface exposed to the rest of the compiler after
// Plan/PlanAt returns (spec.md §6).
type Result struct {
	m *planner.Module
}

// MaxExpandedSize returns the largest ExpandedSize across kernel entries.
func (r *Result) MaxExpandedSize() int { return r.m.MaxExpandedSize() }

// ExpandedSizeOf returns f's post-inline unit size, or false if f was
// never observed as a defined function in the analysed module.
func (r *Result) ExpandedSizeOf(f ir.FunctionRef) (int, bool) { return r.m.ExpandedSizeOf(f) }

// OnlyCalledOnce reports whether f has exactly one call-site caller with
// multiplicity one (and isn't self-recursive), or, failing that, whether
// every caller is a kernel entry calling it at most once.
func (r *Result) OnlyCalledOnce(f ir.FunctionRef) bool { return r.m.OnlyCalledOnce(f) }

// IsTrimmed reports whether f was assigned the trimmed (no-inline)
// disposition.
func (r *Result) IsTrimmed(f ir.FunctionRef) bool { return r.m.IsTrimmed(f) }

// IsStackCallAssigned reports whether f was assigned a stack-call
// boundary disposition.
func (r *Result) IsStackCallAssigned(f ir.FunctionRef) bool { return r.m.IsStackCallAssigned(f) }

// MaxUnitSize returns the largest raw UnitSize across every unit root.
func (r *Result) MaxUnitSize() int { return r.m.MaxUnitSize() }

// SubroutineEnabled reports whether subroutine (stack-call) emission
// should remain enabled for the analysed module.
func (r *Result) SubroutineEnabled() bool { return r.m.SubroutineEnabled() }

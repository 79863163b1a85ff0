package planner

import (
	"github.com/kernelplan/planner/internal/ir"
)

// Collaborators bundles every external interface the planner reads from
// during one invocation (spec.md §6's "Collaborators the core consumes"),
// so the driver can be called with a single value the way a concrete
// module description (irtest.Module, or a real compiler's module) tends
// to implement every one of these on a single receiver.
type Collaborators interface {
	ir.ModuleView
	ir.SizeProbe
	ir.AttributeOracle
	ir.BlockFrequencyProvider
	ir.CallSiteEnumerator
}

// Run executes the planner driver's state machine (spec.md §4.9) over m,
// which must be fresh (just constructed or just reset). level distinguishes
// the first, whole-module invocation from a later re-invocation over a
// narrower scope (supplemented from original_source/, see SPEC_FULL.md).
//
// Run never returns an error itself; invariant violations are reported via
// panic (spec.md §7 class 1), matching the teacher's pervasive
// "panic(fmt.Sprintf(\"BUG: ...\"))" idiom for programmer errors.
func Run(m *Module, c Collaborators, cfg Config, level AnalysisLevel) {
	log.WithField("phase", "Build").Debug("planner: building call graph")
	buildGraph(m, c, c, c)
	classify(m, c)

	if cfg.ControlInlineImplicitArgs || cfg.ForceInlineStackCallWithImplArg {
		log.WithField("phase", "ImplicitArg").Debug("planner: analysing implicit arguments")
		analyseImplicitArgs(m, c, cfg)
	}

	log.WithField("phase", "InitialExpand").Debug("planner: initial unit expansion")
	for _, root := range m.kernelEntries {
		expandUnit(m, root, true, cfg)
	}
	for _, root := range m.unitRoots() {
		updateUnitSize(root)
	}

	subroutineThreshold := cfg.SubroutineThreshold
	if level == LevelPostPartition {
		subroutineThreshold /= 2
	}
	maxExpanded := 0
	for _, root := range m.kernelEntries {
		if root.ExpandedSize > maxExpanded {
			maxExpanded = root.ExpandedSize
		}
	}
	m.subroutineEnabled = true
	if maxExpanded <= subroutineThreshold && !m.hasRecursion {
		m.subroutineEnabled = false
		log.WithFields(map[string]interface{}{
			"max_expanded": maxExpanded,
			"threshold":    subroutineThreshold,
		}).Debug("planner: under subroutine threshold, skipping reduction")
		return
	}

	if cfg.DisableAddingAlwaysAttribute || level != LevelModule {
		return
	}

	runReduce(m, c, cfg)

	// Postcondition (spec.md §4.9 step 6): recursion forces subroutine
	// emission to stay enabled regardless of sizes, independent of
	// anything the reduce phase just did.
	if m.hasRecursion {
		m.subroutineEnabled = true
	}
}

// runReduce is spec.md §4.9 step 5.
func runReduce(m *Module, c Collaborators, cfg Config) {
	if cfg.StaticProfilingForPartitioning || cfg.StaticProfilingForInliningTrimming {
		log.WithField("phase", "Frequency").Debug("planner: estimating static frequencies")
		estimateFrequencies(m, c, c)
		m.coldThreshold = selectColdThreshold(m, c, c, cfg)
		log.WithField("cold_threshold", m.coldThreshold.String()).Debug("planner: selected cold threshold")
	}

	maxUnitSize := 0
	for _, root := range m.unitRoots() {
		if root.UnitSize > maxUnitSize {
			maxUnitSize = root.UnitSize
		}
	}

	if cfg.PartitionUnit && maxUnitSize > cfg.UnitSizeThreshold {
		log.WithField("phase", "Partition").Debug("planner: partitioning oversized units")
		partitionModule(m, cfg)
		for _, root := range m.unitRoots() {
			updateUnitSize(root)
		}
	}

	switch {
	case cfg.ControlKernelTotalSize:
		log.WithField("phase", "Trim").Debug("planner: trimming to kernel-total threshold")
		trimRoots(m, m.kernelAndAddressTakenRoots(), cfg.KernelTotalSizeThreshold, true, cfg)
	case cfg.ControlUnitSize:
		log.WithField("phase", "Trim").Debug("planner: trimming to expanded-unit threshold")
		trimRoots(m, m.unitRoots(), cfg.ExpandedUnitSizeThreshold, false, cfg)
	}
}

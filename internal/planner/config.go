package planner

// ThresholdMode selects which distribution model the threshold selector
// (spec.md §4.6) uses to derive the cold-function threshold. When more
// than one is requested, precedence is Normal > LongTail > AveragePercent
// (spec.md §9 "Ambiguity"), matching the original's independent
// `else if` chain over bit flags.
type ThresholdMode uint8

const (
	// ThresholdNormal fits a log-space normal distribution to the
	// frequency samples and picks the smallest sample at or above
	// mean - (C/10)*stddev.
	ThresholdNormal ThresholdMode = 1 << iota
	// ThresholdLongTail picks the sample at the C-th percentile position
	// in ascending order.
	ThresholdLongTail
	// ThresholdAveragePercent picks mean * (C/1000).
	ThresholdAveragePercent
)

// Has reports whether mode m is requested within the combined flag set f.
func (m ThresholdMode) Has(f ThresholdMode) bool { return f&m != 0 }

// AnalysisLevel distinguishes the first, whole-module planner invocation
// from a later re-invocation over a subset of the module (spec.md §4.9
// step 5; supplemented from original_source/, see SPEC_FULL.md). Only
// LevelModule runs the Reduce phase; LevelPostPartition additionally
// halves SubroutineThreshold before the early-exit check.
type AnalysisLevel uint8

const (
	// LevelModule is the first, whole-module invocation.
	LevelModule AnalysisLevel = iota
	// LevelPostPartition is any subsequent invocation over a narrower
	// scope, after an earlier pass has already partitioned the module.
	LevelPostPartition
)

// Config is the concrete configuration registry consumed by the planner,
// implementing spec.md §6's "Configuration registry" option list
// verbatim, with YAML tags so it can be loaded by cmd/kernelplan for
// offline/manual runs.
type Config struct {
	// ControlInlineTinySize is the function-size boundary below which
	// trimming is disallowed unless the function is also cold.
	ControlInlineTinySize int `yaml:"control_inline_tiny_size"`
	// SubroutineThreshold is the early-exit ceiling (§4.9 step 4).
	SubroutineThreshold int `yaml:"subroutine_threshold"`
	// UnitSizeThreshold triggers partitioning (§4.7).
	UnitSizeThreshold int `yaml:"unit_size_threshold"`
	// KernelTotalSizeThreshold bounds trimming across kernel entries and
	// address-taken functions, ignoring stack-call boundaries (§4.8, via
	// §4.9 step 5's ControlKernelTotalSize branch).
	KernelTotalSizeThreshold int `yaml:"kernel_total_size_threshold"`
	// ExpandedUnitSizeThreshold bounds trimming across kernel entries,
	// stack-call functions, and address-taken functions, respecting
	// stack-call boundaries (§4.8, via ControlUnitSize branch).
	ExpandedUnitSizeThreshold int `yaml:"expanded_unit_size_threshold"`

	// MetricForKernelSizeReduction selects the threshold distribution
	// model(s) (§4.6); see ThresholdMode.
	MetricForKernelSizeReduction ThresholdMode `yaml:"metric_for_kernel_size_reduction"`
	// ParameterForColdFuncThreshold is the mode-specific parameter C.
	ParameterForColdFuncThreshold int `yaml:"parameter_for_cold_func_threshold"`

	// BlockFrequencySampling samples per-basic-block relative frequency
	// instead of per-function static_freq for the threshold population.
	BlockFrequencySampling bool `yaml:"block_frequency_sampling"`
	// StaticProfilingForPartitioning enables frequency-based partitioning
	// eligibility (§4.7 predicate 4).
	StaticProfilingForPartitioning bool `yaml:"static_profiling_for_partitioning"`
	// StaticProfilingForInliningTrimming enables frequency-based
	// trimming eligibility (§4.8 step 3).
	StaticProfilingForInliningTrimming bool `yaml:"static_profiling_for_inlining_trimming"`

	// ControlInlineImplicitArgs force-inlines ordinary functions that
	// reach an intrinsic query (§4.3).
	ControlInlineImplicitArgs bool `yaml:"control_inline_implicit_args"`
	// ForceInlineStackCallWithImplArg force-inlines a stack-call function
	// that reaches an intrinsic query (§4.3).
	ForceInlineStackCallWithImplArg bool `yaml:"force_inline_stackcall_with_impl_arg"`

	// ControlKernelTotalSize enables the kernel-total trimming pass.
	ControlKernelTotalSize bool `yaml:"control_kernel_total_size"`
	// ControlUnitSize enables the expanded-unit trimming pass (used only
	// when ControlKernelTotalSize is false, §4.9 step 5).
	ControlUnitSize bool `yaml:"control_unit_size"`
	// PartitionUnit enables the partitioner (§4.7).
	PartitionUnit bool `yaml:"partition_unit"`
	// ForceInlineExternalFunctions excludes functions reachable from more
	// than one unit from trimming eligibility (§4.8 step 3).
	ForceInlineExternalFunctions bool `yaml:"force_inline_external_functions"`
	// DisableAddingAlwaysAttribute, when true, disables the entire Reduce
	// phase (§4.9 step 5), even at LevelModule (supplemented from
	// original_source/, see SPEC_FULL.md).
	DisableAddingAlwaysAttribute bool `yaml:"disable_adding_always_attribute"`
}

// DefaultConfig returns reasonable defaults, in the spirit of the pack's
// default_config.go convention of giving every tunable a sane starting
// point before user overrides apply.
func DefaultConfig() Config {
	return Config{
		ControlInlineTinySize:               16,
		SubroutineThreshold:                 2000,
		UnitSizeThreshold:                   4000,
		KernelTotalSizeThreshold:            8000,
		ExpandedUnitSizeThreshold:           8000,
		MetricForKernelSizeReduction:        ThresholdNormal,
		ParameterForColdFuncThreshold:       10,
		BlockFrequencySampling:              false,
		StaticProfilingForPartitioning:      true,
		StaticProfilingForInliningTrimming:  true,
		ControlInlineImplicitArgs:           false,
		ForceInlineStackCallWithImplArg:     false,
		ControlKernelTotalSize:              false,
		ControlUnitSize:                     true,
		PartitionUnit:                       true,
		ForceInlineExternalFunctions:        true,
		DisableAddingAlwaysAttribute:        false,
	}
}

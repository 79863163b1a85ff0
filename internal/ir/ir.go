// Package ir defines the abstract interfaces through which the planner
// observes a compute module. The IR itself, its basic-block/instruction
// enumeration, liveness, register allocation, code emission, the
// kernel-metadata store, and the basic-block-frequency provider are all
// external collaborators owned by the rest of the compiler; this package
// only names the narrow surface the planner needs from them.
package ir

import "github.com/kernelplan/planner/internal/scaled"

// FunctionRef is an opaque, comparable handle to a defined function in the
// host compiler's IR. Planner state is keyed by FunctionRef; the planner
// never inspects its structure.
type FunctionRef uint32

// BlockRef is an opaque, comparable handle to a basic block within a
// function.
type BlockRef uint32

// SizeProbe returns the initial, abstract instruction count for a
// function (spec.md §2, "Size probe").
type SizeProbe interface {
	Size(f FunctionRef) int
}

// AttributeOracle exposes the per-function IR attributes and metadata the
// attribute classifier (spec.md §4.2) and frequency estimator (§4.4) read.
type AttributeOracle interface {
	IsEntry(f FunctionRef) bool
	HasForceStackCall(f FunctionRef) bool
	HasNoInline(f FunctionRef) bool
	HasAlwaysInline(f FunctionRef) bool
	HasInlineHint(f FunctionRef) bool
	HasCold(f FunctionRef) bool
	HasLocalLinkage(f FunctionRef) bool
}

// BlockFrequencyProvider exposes per-function entry frequency and
// per-block relative frequency, used by the frequency estimator (§4.4)
// and, when block-level sampling is enabled, the threshold selector
// (§4.6).
type BlockFrequencyProvider interface {
	EntryFrequency(f FunctionRef) scaled.Number
	BlockFrequency(f FunctionRef, b BlockRef) scaled.Number
}

// CallSite is one call instruction, naming its caller, callee, and the
// basic block containing it.
type CallSite struct {
	Caller FunctionRef
	Callee FunctionRef
	Block  BlockRef
}

// CallSiteEnumerator enumerates the call-site users of a function, i.e.
// the set of (caller, block) pairs whose instruction at Block is a call to
// Callee == f. Non-call-site users (e.g. a function address stored into
// memory) are not enumerated here; their absence is exactly what makes a
// function address-taken (spec.md §4.2).
type CallSiteEnumerator interface {
	CallersOf(f FunctionRef) []CallSite
}

// ModuleView exposes the module's function list and per-function
// structural facts the call-graph builder and implicit-arg analyser need.
type ModuleView interface {
	// Functions returns every function defined or declared in the module,
	// in a stable order.
	Functions() []FunctionRef
	// HasBody reports whether f is defined (has a body) as opposed to
	// merely declared. Declared-only functions are skipped entirely by
	// the call-graph builder (spec.md §4.1).
	HasBody(f FunctionRef) bool
	// IntrinsicCalls returns the names of intrinsic queries (spec.md
	// §4.3's closed set) reached by f's body, in any order; duplicates
	// are permitted and ignored.
	IntrinsicCalls(f FunctionRef) []string
	// Blocks returns the basic blocks of f, for block-level frequency
	// sampling (§4.6). May be empty if the caller never enables
	// BlockFrequencySampling.
	Blocks(f FunctionRef) []BlockRef
}

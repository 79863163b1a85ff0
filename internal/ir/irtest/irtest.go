// Package irtest builds synthetic ir.ModuleView / ir.SizeProbe /
// ir.AttributeOracle / ir.BlockFrequencyProvider / ir.CallSiteEnumerator
// implementations from a small declarative description. It is used by
// internal/planner's tests to build the call graphs described in spec.md
// §8, and by cmd/kernelplan to load a module description from YAML for
// offline/manual runs.
package irtest

import (
	"fmt"

	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/scaled"
)

// Func describes one function in a synthetic module.
type Func struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`

	Entry           bool `yaml:"entry"`
	ForceStackCall  bool `yaml:"force_stack_call"`
	NoInline        bool `yaml:"no_inline"`
	AlwaysInline    bool `yaml:"always_inline"`
	InlineHint      bool `yaml:"inline_hint"`
	Cold            bool `yaml:"cold"`
	LocalLinkage    bool `yaml:"local_linkage"`
	Declaration     bool `yaml:"declaration"`
	Intrinsics      []string `yaml:"intrinsics"`
	EntryFrequency  uint64   `yaml:"entry_frequency"`
}

// Call describes one call site: Caller invokes Callee from block Block,
// with the given block's relative frequency (scaled by Caller's
// EntryFrequency the way spec.md §4.4 describes).
type Call struct {
	Caller    string `yaml:"caller"`
	Callee    string `yaml:"callee"`
	Block     string `yaml:"block"`
	BlockFreq uint64 `yaml:"block_freq"`
}

// Spec is the full declarative description of a synthetic module.
type Spec struct {
	Functions []Func `yaml:"functions"`
	Calls     []Call `yaml:"calls"`
}

// Module is the built, queryable form of a Spec, implementing every
// internal/ir collaborator interface plus a name/ref lookup used by
// tests and the CLI report printer.
type Module struct {
	spec        Spec
	nameToRef   map[string]ir.FunctionRef
	refToName   map[ir.FunctionRef]string
	refToFunc   map[ir.FunctionRef]*Func
	blockNames  map[ir.FunctionRef]map[string]ir.BlockRef
	blockFreqs  map[ir.FunctionRef]map[ir.BlockRef]scaled.Number
	blocksOf    map[ir.FunctionRef][]ir.BlockRef
	callSitesOf map[ir.FunctionRef][]ir.CallSite // indexed by callee
}

// Build constructs a Module from s. Function names must be unique; a call
// referencing an unknown function name is an error.
func Build(s Spec) (*Module, error) {
	m := &Module{
		spec:        s,
		nameToRef:   make(map[string]ir.FunctionRef),
		refToName:   make(map[ir.FunctionRef]string),
		refToFunc:   make(map[ir.FunctionRef]*Func),
		blockNames:  make(map[ir.FunctionRef]map[string]ir.BlockRef),
		blockFreqs:  make(map[ir.FunctionRef]map[ir.BlockRef]scaled.Number),
		blocksOf:    make(map[ir.FunctionRef][]ir.BlockRef),
		callSitesOf: make(map[ir.FunctionRef][]ir.CallSite),
	}
	for i := range s.Functions {
		f := &s.Functions[i]
		if _, ok := m.nameToRef[f.Name]; ok {
			return nil, fmt.Errorf("irtest: duplicate function name %q", f.Name)
		}
		ref := ir.FunctionRef(i + 1)
		m.nameToRef[f.Name] = ref
		m.refToName[ref] = f.Name
		m.refToFunc[ref] = f
		m.blockNames[ref] = make(map[string]ir.BlockRef)
	}
	nextBlock := ir.BlockRef(1)
	blockRefFor := func(caller ir.FunctionRef, name string) ir.BlockRef {
		if name == "" {
			name = fmt.Sprintf("blk%d", nextBlock)
		}
		if b, ok := m.blockNames[caller][name]; ok {
			return b
		}
		b := nextBlock
		nextBlock++
		m.blockNames[caller][name] = b
		m.blocksOf[caller] = append(m.blocksOf[caller], b)
		return b
	}
	for _, c := range s.Calls {
		caller, ok := m.nameToRef[c.Caller]
		if !ok {
			return nil, fmt.Errorf("irtest: call references unknown caller %q", c.Caller)
		}
		callee, ok := m.nameToRef[c.Callee]
		if !ok {
			return nil, fmt.Errorf("irtest: call references unknown callee %q", c.Callee)
		}
		block := blockRefFor(caller, c.Block)
		if m.blockFreqs[caller] == nil {
			m.blockFreqs[caller] = make(map[ir.BlockRef]scaled.Number)
		}
		if c.BlockFreq != 0 {
			m.blockFreqs[caller][block] = scaled.FromInt(c.BlockFreq)
		}
		m.callSitesOf[callee] = append(m.callSitesOf[callee], ir.CallSite{
			Caller: caller, Callee: callee, Block: block,
		})
	}
	return m, nil
}

// Ref returns the FunctionRef for a function name, or false if absent.
func (m *Module) Ref(name string) (ir.FunctionRef, bool) {
	r, ok := m.nameToRef[name]
	return r, ok
}

// Name returns the function name for a FunctionRef, or "" if absent.
func (m *Module) Name(f ir.FunctionRef) string {
	return m.refToName[f]
}

// Functions implements ir.ModuleView.
func (m *Module) Functions() []ir.FunctionRef {
	refs := make([]ir.FunctionRef, 0, len(m.spec.Functions))
	for i := range m.spec.Functions {
		refs = append(refs, ir.FunctionRef(i+1))
	}
	return refs
}

// HasBody implements ir.ModuleView.
func (m *Module) HasBody(f ir.FunctionRef) bool {
	fn, ok := m.refToFunc[f]
	return ok && !fn.Declaration
}

// IntrinsicCalls implements ir.ModuleView.
func (m *Module) IntrinsicCalls(f ir.FunctionRef) []string {
	fn, ok := m.refToFunc[f]
	if !ok {
		return nil
	}
	return fn.Intrinsics
}

// Blocks implements ir.ModuleView.
func (m *Module) Blocks(f ir.FunctionRef) []ir.BlockRef {
	return m.blocksOf[f]
}

// Size implements ir.SizeProbe.
func (m *Module) Size(f ir.FunctionRef) int {
	fn, ok := m.refToFunc[f]
	if !ok {
		return 0
	}
	return fn.Size
}

// IsEntry implements ir.AttributeOracle.
func (m *Module) IsEntry(f ir.FunctionRef) bool { return m.refToFunc[f] != nil && m.refToFunc[f].Entry }

// HasForceStackCall implements ir.AttributeOracle.
func (m *Module) HasForceStackCall(f ir.FunctionRef) bool {
	return m.refToFunc[f] != nil && m.refToFunc[f].ForceStackCall
}

// HasNoInline implements ir.AttributeOracle.
func (m *Module) HasNoInline(f ir.FunctionRef) bool {
	return m.refToFunc[f] != nil && m.refToFunc[f].NoInline
}

// HasAlwaysInline implements ir.AttributeOracle.
func (m *Module) HasAlwaysInline(f ir.FunctionRef) bool {
	return m.refToFunc[f] != nil && m.refToFunc[f].AlwaysInline
}

// HasInlineHint implements ir.AttributeOracle.
func (m *Module) HasInlineHint(f ir.FunctionRef) bool {
	return m.refToFunc[f] != nil && m.refToFunc[f].InlineHint
}

// HasCold implements ir.AttributeOracle.
func (m *Module) HasCold(f ir.FunctionRef) bool { return m.refToFunc[f] != nil && m.refToFunc[f].Cold }

// HasLocalLinkage implements ir.AttributeOracle.
func (m *Module) HasLocalLinkage(f ir.FunctionRef) bool {
	return m.refToFunc[f] != nil && m.refToFunc[f].LocalLinkage
}

// EntryFrequency implements ir.BlockFrequencyProvider.
func (m *Module) EntryFrequency(f ir.FunctionRef) scaled.Number {
	fn, ok := m.refToFunc[f]
	if !ok || fn.EntryFrequency == 0 {
		return scaled.FromInt(1)
	}
	return scaled.FromInt(fn.EntryFrequency)
}

// BlockFrequency implements ir.BlockFrequencyProvider.
func (m *Module) BlockFrequency(f ir.FunctionRef, b ir.BlockRef) scaled.Number {
	if byBlock, ok := m.blockFreqs[f]; ok {
		if v, ok := byBlock[b]; ok {
			return v
		}
	}
	return m.EntryFrequency(f)
}

// CallersOf implements ir.CallSiteEnumerator: it returns the call sites
// that call f (i.e. f is the Callee), matching the "users of F that are
// call sites" framing of spec.md §4.1.
func (m *Module) CallersOf(f ir.FunctionRef) []ir.CallSite {
	return m.callSitesOf[f]
}

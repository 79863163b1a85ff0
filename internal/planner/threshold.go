package planner

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/scaled"
)

// selectColdThreshold is spec.md §4.6: builds a sample population, drops
// zero samples, and applies whichever reduction mode is enabled first in
// normal > long-tail > average-percent precedence (spec.md §9
// "Ambiguity" — the original treats the flags as independent else-ifs,
// which this precedence order reproduces).
func selectColdThreshold(m *Module, view ir.ModuleView, freqs ir.BlockFrequencyProvider, cfg Config) scaled.Number {
	samples := buildSamplePopulation(m, view, freqs, cfg)
	if len(samples) == 0 {
		return scaled.Largest()
	}

	switch {
	case cfg.MetricForKernelSizeReduction.Has(ThresholdNormal):
		return normalThreshold(samples, cfg.ParameterForColdFuncThreshold)
	case cfg.MetricForKernelSizeReduction.Has(ThresholdLongTail):
		return longTailThreshold(samples, cfg.ParameterForColdFuncThreshold)
	case cfg.MetricForKernelSizeReduction.Has(ThresholdAveragePercent):
		return averagePercentThreshold(samples, cfg.ParameterForColdFuncThreshold)
	default:
		return scaled.Largest()
	}
}

// buildSamplePopulation collects per-function static_freq (default) or
// per-basic-block relative counts (if BlockFrequencySampling is set),
// dropping zero samples since they have no log-space representation
// (spec.md §7 class 2).
func buildSamplePopulation(m *Module, view ir.ModuleView, freqs ir.BlockFrequencyProvider, cfg Config) []scaled.Number {
	samples := make([]scaled.Number, 0, len(m.order))
	if !cfg.BlockFrequencySampling {
		for _, n := range m.order {
			if !n.StaticFreq.IsZero() {
				samples = append(samples, n.StaticFreq)
			}
		}
		return samples
	}
	for _, n := range m.order {
		entryFreq := freqs.EntryFrequency(n.Ref)
		for _, b := range view.Blocks(n.Ref) {
			bf := freqs.BlockFrequency(n.Ref, b)
			if bf.IsZero() || entryFreq.IsZero() {
				continue
			}
			samples = append(samples, scaled.Mul(n.StaticFreq, scaled.Div(bf, entryFreq)))
		}
	}
	return samples
}

func sortAscending(samples []scaled.Number) []scaled.Number {
	sorted := make([]scaled.Number, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return scaled.Less(sorted[i], sorted[j]) })
	return sorted
}

// normalThreshold implements spec.md §4.6's Normal (log-space) mode.
func normalThreshold(samples []scaled.Number, c int) scaled.Number {
	sorted := sortAscending(samples)
	logs := make([]float64, len(sorted))
	for i, s := range sorted {
		logs[i] = s.Log10()
	}
	mu, sigma := stat.MeanStdDev(logs, nil)
	target := mu - (float64(c)/10.0)*sigma

	for i, lv := range logs {
		if lv >= target {
			return sorted[i]
		}
	}
	return sorted[len(sorted)-1]
}

// longTailThreshold implements spec.md §4.6's Long-tail mode: the element
// at the floor(N*C/100) position of the ascending sample list.
func longTailThreshold(samples []scaled.Number, c int) scaled.Number {
	sorted := sortAscending(samples)
	pos := len(sorted) * c / 100
	if pos >= len(sorted) {
		pos = len(sorted) - 1
	}
	return sorted[pos]
}

// averagePercentThreshold implements spec.md §4.6's Average-percent mode:
// mean * (C/1000).
func averagePercentThreshold(samples []scaled.Number, c int) scaled.Number {
	var sum scaled.Number
	for _, s := range samples {
		sum = scaled.Add(sum, s)
	}
	mean := scaled.Div(sum, scaled.FromInt(uint64(len(samples))))
	fraction := scaled.Div(scaled.FromInt(uint64(c)), scaled.FromInt(1000))
	return scaled.Mul(mean, fraction)
}

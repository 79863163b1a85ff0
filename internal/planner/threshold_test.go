package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernelplan/planner/internal/scaled"
)

func numbers(vs ...uint64) []scaled.Number {
	out := make([]scaled.Number, len(vs))
	for i, v := range vs {
		out[i] = scaled.FromInt(v)
	}
	return out
}

// TestLongTailThreshold_percentilePosition is spec.md §8 scenario 6.
func TestLongTailThreshold_percentilePosition(t *testing.T) {
	samples := numbers(2048, 1024, 512, 256, 128, 64, 32, 32, 16, 16, 8, 8, 4, 4, 2, 2, 1, 1, 1, 1)
	got := longTailThreshold(samples, 20)
	want := scaled.FromInt(2)
	require.True(t, scaled.LessOrEqual(got, want) && scaled.LessOrEqual(want, got), "want 2, got %s", got)
}

func TestLongTailThreshold_monotoneInC(t *testing.T) {
	samples := numbers(1, 2, 4, 8, 16, 32, 64, 128, 256, 512)
	prev := longTailThreshold(samples, 0)
	for c := 10; c <= 100; c += 10 {
		cur := longTailThreshold(samples, c)
		require.True(t, scaled.LessOrEqual(prev, cur), "threshold should be non-decreasing in C")
		prev = cur
	}
}

func TestAveragePercentThreshold(t *testing.T) {
	samples := numbers(10, 20, 30) // mean = 20
	got := averagePercentThreshold(samples, 50)
	want := scaled.FromInt(1) // 20 * (50/1000) = 1
	require.InDelta(t, want.Log10(), got.Log10(), 1e-9)
}

func TestNormalThreshold_zeroCIsAboutMean(t *testing.T) {
	samples := numbers(10, 10, 10, 10) // no spread: stddev == 0
	got := normalThreshold(samples, 0)
	require.InDelta(t, 1.0, got.Log10(), 1e-9) // log10(10) == 1
}

func TestNormalThreshold_largerCLowersThreshold(t *testing.T) {
	samples := numbers(1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024)
	low := normalThreshold(samples, 0)
	high := normalThreshold(samples, 30)
	require.True(t, scaled.LessOrEqual(high, low))
}

func TestSelectColdThreshold_noSamplesIsLargest(t *testing.T) {
	m := NewModule()
	cfg := DefaultConfig()
	cfg.MetricForKernelSizeReduction = ThresholdNormal
	got := selectColdThreshold(m, nil, nil, cfg)
	require.Equal(t, scaled.Largest(), got)
}

// TestThresholdMode_precedence documents spec.md §9's "Ambiguity" note:
// when multiple metrics are bit-set, Normal wins over LongTail wins over
// AveragePercent.
func TestThresholdMode_precedence(t *testing.T) {
	combo := ThresholdNormal | ThresholdLongTail | ThresholdAveragePercent
	require.True(t, combo.Has(ThresholdNormal))
	require.True(t, combo.Has(ThresholdLongTail))
	require.True(t, combo.Has(ThresholdAveragePercent))

	samples := numbers(10, 20, 30)
	cfg := DefaultConfig()
	cfg.MetricForKernelSizeReduction = combo
	m := NewModule()
	for _, n := range samples {
		node := &FunctionNode{StaticFreq: n}
		m.order = append(m.order, node)
	}
	got := selectColdThreshold(m, nil, nil, cfg)
	want := normalThreshold(samples, cfg.ParameterForColdFuncThreshold)
	require.InDelta(t, want.Log10(), got.Log10(), 1e-9)
}

package scaled

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func approxEqual(t *testing.T, want float64, got Number, tolerance float64) {
	t.Helper()
	gotF := float64(got.Mantissa) * math.Pow(2, float64(got.Exponent))
	if want == 0 {
		require.True(t, got.IsZero())
		return
	}
	require.InEpsilon(t, want, gotF, tolerance)
}

func TestFromInt(t *testing.T) {
	approxEqual(t, 0, FromInt(0), 1e-9)
	approxEqual(t, 10, FromInt(10), 1e-9)
	approxEqual(t, 1<<40, FromInt(1<<40), 1e-9)
}

func TestAdd(t *testing.T) {
	a, b := FromInt(10), FromInt(15)
	approxEqual(t, 25, Add(a, b), 1e-9)

	// Widely differing magnitudes still add correctly.
	big := FromInt(1 << 62)
	small := FromInt(1)
	approxEqual(t, float64(int64(1)<<62)+1, Add(big, small), 1e-6)
}

func TestMul(t *testing.T) {
	a, b := FromInt(7), FromInt(6)
	approxEqual(t, 42, Mul(a, b), 1e-9)

	big := FromInt(1 << 40)
	approxEqual(t, math.Pow(2, 80), Mul(big, big), 1e-6)
}

func TestDiv(t *testing.T) {
	a, b := FromInt(100), FromInt(4)
	approxEqual(t, 25, Div(a, b), 1e-6)

	a, b = FromInt(1), FromInt(3)
	approxEqual(t, 1.0/3.0, Div(a, b), 1e-6)
}

func TestLess(t *testing.T) {
	require.True(t, Less(FromInt(1), FromInt(2)))
	require.False(t, Less(FromInt(2), FromInt(1)))
	require.False(t, Less(FromInt(5), FromInt(5)))
	require.True(t, Less(Zero, FromInt(1)))
	require.False(t, Less(FromInt(1), Zero))
}

func TestLog10(t *testing.T) {
	n := FromInt(1000)
	require.InDelta(t, 3.0, n.Log10(), 1e-6)

	n = Mul(FromInt(1<<32), FromInt(1<<32))
	require.InDelta(t, math.Log10(math.Pow(2, 64)), n.Log10(), 1e-4)
}

func TestLargestIsLargest(t *testing.T) {
	require.True(t, Less(FromInt(math.MaxUint64), Largest()))
}

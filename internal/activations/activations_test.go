// Package activations provides unit tests for activation functions.
package activations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// TestSigmoid tests Sigmoid activation.
func TestSigmoid(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{math.Inf(-1), 0.0},
		{-2.0, 1 / (1 + math.Exp(2))},
		{-1.0, 1 / (1 + math.Exp(1))},
		{0.0, 0.5},
		{1.0, 1 / (1 + math.Exp(-1))},
		{2.0, 1 / (1 + math.Exp(-2))},
		{math.Inf(1), 1.0},
	}

	in := make([]float64, len(tests))
	for i, tt := range tests {
		in[i] = tt.input
	}
	out := make([]float64, len(in))
	Sigmoid{}.Activate(out, in)

	for i, tt := range tests {
		if math.Abs(out[i]-tt.expected) > 1e-12 {
			t.Errorf("Sigmoid(%v) = %v, want %v", tt.input, out[i], tt.expected)
		}
	}
}

// TestSigmoidDerivative tests that the derivative is computed from the output.
func TestSigmoidDerivative(t *testing.T) {
	y := []float64{0.5, 0.9, 0.1, 0, 1}
	want := []float64{0.25, 0.09, 0.09, 0, 0}

	got := make([]float64, len(y))
	Sigmoid{}.Derivative(got, y)

	assert.True(t, floats.EqualApprox(got, want, 1e-12), "got %v, want %v", got, want)
}

// TestSoftmaxSumsToOne tests that softmax outputs form a distribution.
func TestSoftmaxSumsToOne(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3},
		{0, 0, 0},
		{-5, 0.5, 12},
		{1000, 1001, 1002},
		{-1000, -1000.5, -999},
		{42},
	}

	for _, z := range inputs {
		out := make([]float64, len(z))
		Softmax{}.Activate(out, z)

		assert.InDelta(t, 1.0, floats.Sum(out), 1e-9, "softmax(%v) sum", z)
		for i, v := range out {
			assert.False(t, math.IsNaN(v), "softmax(%v)[%d] is NaN", z, i)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

// TestSoftmaxShiftInvariant tests numerical stabilization on large scores.
func TestSoftmaxShiftInvariant(t *testing.T) {
	small := []float64{1, 2, 3}
	large := []float64{1001, 1002, 1003}

	a := make([]float64, 3)
	b := make([]float64, 3)
	Softmax{}.Activate(a, small)
	Softmax{}.Activate(b, large)

	assert.True(t, floats.EqualApprox(a, b, 1e-12), "softmax not shift invariant: %v vs %v", a, b)
	assert.Greater(t, a[2], a[1])
	assert.Greater(t, a[1], a[0])
}

// TestSoftmaxInPlace tests that dst may alias z.
func TestSoftmaxInPlace(t *testing.T) {
	z := []float64{0, math.Log(3)}
	Softmax{}.Activate(z, z)

	assert.InDelta(t, 0.25, z[0], 1e-12)
	assert.InDelta(t, 0.75, z[1], 1e-12)
}

// TestSoftmaxDerivative tests the fused cross-entropy pass-through.
func TestSoftmaxDerivative(t *testing.T) {
	got := make([]float64, 3)
	Softmax{}.Derivative(got, []float64{0.2, 0.3, 0.5})
	assert.Equal(t, []float64{1, 1, 1}, got)
}

// TestParseKind tests configuration names round-trip.
func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSigmoid, KindSoftmax} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var parsed Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("relu")
	assert.Error(t, err)

	assert.IsType(t, Softmax{}, KindSoftmax.Activation())
	assert.IsType(t, Sigmoid{}, KindSigmoid.Activation())
}

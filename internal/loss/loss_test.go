// Package loss provides unit tests for loss functions.
package loss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSquaredErrorForward tests SquaredError forward pass.
func TestSquaredErrorForward(t *testing.T) {
	tests := []struct {
		name     string
		yPred    []float64
		yTrue    []float64
		expected float64
	}{
		{"Perfect prediction", []float64{1.0, 2.0, 3.0}, []float64{1.0, 2.0, 3.0}, 0.0},
		{"Single error", []float64{1.0, 2.0}, []float64{1.5, 2.0}, 0.125},
		{"Multiple errors", []float64{1.0, 2.0, 3.0}, []float64{0.0, 1.0, 2.0}, 1.5},
		{"XOR miss", []float64{0.9}, []float64{0}, 0.405},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredError{}.Forward(tt.yPred, tt.yTrue), 1e-12)
		})
	}
}

// TestSquaredErrorBackward tests SquaredError backward pass.
func TestSquaredErrorBackward(t *testing.T) {
	grad := SquaredError{}.Backward([]float64{0.8, 0.1}, []float64{1, 0})
	assert.InDelta(t, -0.2, grad[0], 1e-12)
	assert.InDelta(t, 0.1, grad[1], 1e-12)

	inPlace := make([]float64, 2)
	SquaredError{}.BackwardInPlace([]float64{0.8, 0.1}, []float64{1, 0}, inPlace)
	assert.Equal(t, grad, inPlace)
}

// TestCrossEntropyForward tests CrossEntropy with one-hot targets.
func TestCrossEntropyForward(t *testing.T) {
	tests := []struct {
		name     string
		yPred    []float64
		yTrue    []float64
		expected float64
	}{
		{"Confident correct", []float64{1, 0, 0}, []float64{1, 0, 0}, 0},
		{"Uniform", []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, []float64{0, 1, 0}, math.Log(3)},
		{"Half", []float64{0.5, 0.25, 0.25}, []float64{1, 0, 0}, math.Log(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CrossEntropy{}.Forward(tt.yPred, tt.yTrue), 1e-12)
		})
	}
}

// TestCrossEntropyForwardClipped tests that a zero probability does not produce Inf.
func TestCrossEntropyForwardClipped(t *testing.T) {
	l := CrossEntropy{}.Forward([]float64{0, 1}, []float64{1, 0})
	assert.False(t, math.IsInf(l, 0))
	assert.InDelta(t, -math.Log(eps), l, 1e-9)
}

// TestCrossEntropyBackward tests the fused softmax gradient (p - t).
func TestCrossEntropyBackward(t *testing.T) {
	grad := CrossEntropy{}.Backward([]float64{0.7, 0.2, 0.1}, []float64{0, 1, 0})
	assert.InDeltaSlice(t, []float64{0.7, -0.8, 0.1}, grad, 1e-12)
}

// TestLengthMismatch tests that mismatched slices panic.
func TestLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { SquaredError{}.Forward([]float64{1, 2}, []float64{1}) })
	assert.Panics(t, func() { CrossEntropy{}.Forward([]float64{1, 2}, []float64{1}) })
	assert.Panics(t, func() { SquaredError{}.BackwardInPlace([]float64{1}, []float64{1}, nil) })
	assert.Panics(t, func() { CrossEntropy{}.Backward([]float64{1}, []float64{1, 0}) })
}

// Package activations provides benchmarks for activation functions.
package activations

import (
	"testing"

	"golang.org/x/exp/rand"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	rng := rand.New(rand.NewSource(1))
	for i := range slice {
		slice[i] = rng.Float64()*8 - 4
	}
}

// BenchmarkSigmoidActivate benchmarks the Sigmoid activation function.
func BenchmarkSigmoidActivate(b *testing.B) {
	inputs := make([]float64, 1000)
	out := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sigmoid{}.Activate(out, inputs)
	}
}

// BenchmarkSoftmaxActivate benchmarks the Softmax activation function.
func BenchmarkSoftmaxActivate(b *testing.B) {
	inputs := make([]float64, 10)
	out := make([]float64, 10)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Softmax{}.Activate(out, inputs)
	}
}

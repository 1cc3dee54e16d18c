// Package layer provides benchmarks for the dense layer.
package layer

import (
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
)

// BenchmarkDenseForward benchmarks a forward pass through a hidden-sized layer.
func BenchmarkDenseForward(b *testing.B) {
	d, err := NewDense(64, 32, activations.KindSigmoid, BiasUniform, rand.NewSource(1))
	if err != nil {
		b.Fatal(err)
	}
	x := mat.NewVecDense(64, nil)
	for i := 0; i < 64; i++ {
		x.SetVec(i, float64(i)/64)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := d.Forward(x); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDenseApplyUpdate benchmarks the in-place parameter update.
func BenchmarkDenseApplyUpdate(b *testing.B) {
	d, err := NewDense(64, 32, activations.KindSigmoid, BiasUniform, rand.NewSource(1))
	if err != nil {
		b.Fatal(err)
	}
	dW := mat.NewDense(32, 64, nil)
	dB := mat.NewVecDense(32, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := d.ApplyUpdate(dW, dB); err != nil {
			b.Fatal(err)
		}
	}
}

// Package layer provides the fully connected layer that owns a network's
// weights and biases.
package layer

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
)

// Dense is a fully connected layer: z = W·x + b, a = f(z).
// W has shape [out, in] and b has length out; both keep their shape for the
// lifetime of the layer.
type Dense struct {
	weights *mat.Dense
	biases  *mat.VecDense
	kind    activations.Kind
	act     activations.Activation
	inSize  int
	outSize int
}

// NewDense creates a layer with weights drawn from Uniform[-1, 1] using src.
// Biases are drawn the same way or zeroed, depending on bias.
// Weights are drawn row by row before any bias.
func NewDense(in, out int, kind activations.Kind, bias BiasInit, src rand.Source) (*Dense, error) {
	if in <= 0 || out <= 0 {
		return nil, errors.Errorf("layer: sizes must be positive, got in=%d out=%d", in, out)
	}
	if src == nil {
		return nil, errors.New("layer: nil random source")
	}

	dist := uniform(src)
	weights := make([]float64, out*in)
	for i := range weights {
		weights[i] = dist.Rand()
	}

	biases := make([]float64, out)
	if bias == BiasUniform {
		for i := range biases {
			biases[i] = dist.Rand()
		}
	}

	return &Dense{
		weights: mat.NewDense(out, in, weights),
		biases:  mat.NewVecDense(out, biases),
		kind:    kind,
		act:     kind.Activation(),
		inSize:  in,
		outSize: out,
	}, nil
}

// Forward computes the pre-activation z and activation a for input x.
// The layer is not modified. Both returned vectors are freshly allocated.
func (d *Dense) Forward(x mat.Vector) (z, a *mat.VecDense, err error) {
	if x.Len() != d.inSize {
		return nil, nil, NewShapeError("layer.Forward", []int{d.inSize}, []int{x.Len()})
	}

	z = mat.NewVecDense(d.outSize, nil)
	z.MulVec(d.weights, x)
	z.AddVec(z, d.biases)

	a = mat.NewVecDense(d.outSize, nil)
	d.act.Activate(a.RawVector().Data, z.RawVector().Data)
	return z, a, nil
}

// ApplyUpdate adds dW to the weights and dB to the biases element-wise.
// On a dimension mismatch nothing is modified.
func (d *Dense) ApplyUpdate(dW mat.Matrix, dB mat.Vector) error {
	r, c := dW.Dims()
	if r != d.outSize || c != d.inSize {
		return NewShapeError("layer.ApplyUpdate weights", []int{d.outSize, d.inSize}, []int{r, c})
	}
	if dB.Len() != d.outSize {
		return NewShapeError("layer.ApplyUpdate biases", []int{d.outSize}, []int{dB.Len()})
	}

	d.weights.Add(d.weights, dW)
	d.biases.AddVec(d.biases, dB)
	return nil
}

// NumParams returns the number of weights plus biases.
func (d *Dense) NumParams() int {
	return d.outSize*d.inSize + d.outSize
}

// Params returns the layer parameters flattened as
// [W row-major..., b...]. The slice is a copy.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, d.NumParams())
	for i := 0; i < d.outSize; i++ {
		params = append(params, d.weights.RawRowView(i)...)
	}
	params = append(params, d.biases.RawVector().Data...)
	return params
}

// SetParams overwrites weights and biases from a slice laid out like Params.
func (d *Dense) SetParams(params []float64) error {
	if len(params) != d.NumParams() {
		return NewShapeError("layer.SetParams", []int{d.NumParams()}, []int{len(params)})
	}
	nw := d.outSize * d.inSize
	for i := 0; i < d.outSize; i++ {
		copy(d.weights.RawRowView(i), params[i*d.inSize:(i+1)*d.inSize])
	}
	copy(d.biases.RawVector().Data, params[nw:])
	return nil
}

// Weights returns a read-only view of the weight matrix.
func (d *Dense) Weights() mat.Matrix {
	return d.weights
}

// Biases returns a read-only view of the bias vector.
func (d *Dense) Biases() mat.Vector {
	return d.biases
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Kind returns the activation kind of the layer.
func (d *Dense) Kind() activations.Kind {
	return d.kind
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}

// Package activations provides the nonlinearities applied by dense layers.
package activations

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Activation is a vector nonlinearity.
//
// Derivative is expressed in terms of the activation output y = f(z), which is
// what the backward pass has cached.
type Activation interface {
	// Activate computes dst = f(z).
	Activate(dst, z []float64)

	// Derivative computes dst = f'(z) given y = f(z).
	Derivative(dst, y []float64)
}

// Kind names an activation so it can be carried in configuration.
type Kind int

const (
	// KindSigmoid is the elementwise logistic function.
	KindSigmoid Kind = iota
	// KindSoftmax normalizes the layer output into a probability distribution.
	// It is only valid on the output layer, paired with cross-entropy loss.
	KindSoftmax
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSigmoid:
		return "sigmoid"
	case KindSoftmax:
		return "softmax"
	default:
		return "unknown"
	}
}

// ParseKind parses a configuration name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "sigmoid":
		return KindSigmoid, nil
	case "softmax":
		return KindSoftmax, nil
	}
	return 0, errors.Errorf("activations: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindSigmoid && k != KindSoftmax {
		return nil, errors.Errorf("activations: unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Activation returns the implementation for the kind.
func (k Kind) Activation() Activation {
	if k == KindSoftmax {
		return Softmax{}
	}
	return Sigmoid{}
}

// Sigmoid activation function.
type Sigmoid struct{}

// sigmoid computes the logistic function
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(z) elementwise.
func (Sigmoid) Activate(dst, z []float64) {
	for i, v := range z {
		dst[i] = sigmoid(v)
	}
}

// Derivative computes y * (1 - y) elementwise.
func (Sigmoid) Derivative(dst, y []float64) {
	for i, v := range y {
		dst[i] = v * (1 - v)
	}
}

// Softmax activation function for the output layer.
type Softmax struct{}

// Activate computes exp(z) / sum(exp(z)).
// The maximum is subtracted before exponentiating so large scores cannot overflow.
func (Softmax) Activate(dst, z []float64) {
	if len(z) == 0 {
		return
	}
	maxVal := floats.Max(z)

	sum := 0.0
	for i, v := range z {
		dst[i] = math.Exp(v - maxVal)
		sum += dst[i]
	}

	floats.Scale(1/sum, dst[:len(z)])
}

// Derivative fills dst with ones.
// Softmax is always paired with cross-entropy, whose gradient with respect to
// the scores is already (p - t); no Jacobian is applied on top of it.
func (Softmax) Derivative(dst, y []float64) {
	for i := range y {
		dst[i] = 1
	}
}

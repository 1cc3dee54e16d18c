// Package opt provides the stochastic gradient descent update rule and the
// error-signal convention it is paired with.
package opt

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Convention fixes how the output error is defined and, with it, the direction
// in which steps are applied. The two are never chosen independently.
type Convention int

const (
	// TargetMinusPredicted defines the output error as (t - y).
	// Steps point downhill already and are added to the parameters.
	TargetMinusPredicted Convention = iota
	// PredictedMinusTarget defines the output error as (y - t).
	// Steps are loss gradients and are subtracted from the parameters.
	PredictedMinusTarget
)

// String returns the configuration name of the convention.
func (c Convention) String() string {
	switch c {
	case TargetMinusPredicted:
		return "target-minus-predicted"
	case PredictedMinusTarget:
		return "predicted-minus-target"
	default:
		return "unknown"
	}
}

// ParseConvention parses a configuration name.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "target-minus-predicted":
		return TargetMinusPredicted, nil
	case "predicted-minus-target":
		return PredictedMinusTarget, nil
	}
	return 0, errors.Errorf("opt: unknown convention %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Convention) MarshalText() ([]byte, error) {
	if c != TargetMinusPredicted && c != PredictedMinusTarget {
		return nil, errors.Errorf("opt: unknown convention %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Convention) UnmarshalText(text []byte) error {
	parsed, err := ParseConvention(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Sign is +1 when steps are added and -1 when they are subtracted.
func (c Convention) Sign() float64 {
	if c == PredictedMinusTarget {
		return -1
	}
	return 1
}

// OutputError converts dL/dy, as returned by a loss, into the output error
// signal of this convention: -(dL/dy) = (t - y) or dL/dy = (y - t).
func (c Convention) OutputError(dst, lossGrad []float64) {
	sign := -c.Sign()
	for i, g := range lossGrad {
		dst[i] = sign * g
	}
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
	Convention   Convention
}

// Validate checks the learning rate and convention.
func (s SGD) Validate() error {
	if !(s.LearningRate > 0) || math.IsInf(s.LearningRate, 0) {
		return errors.Errorf("opt: learning rate must be positive and finite, got %v", s.LearningRate)
	}
	if _, err := s.Convention.MarshalText(); err != nil {
		return err
	}
	return nil
}

// Factor is the scalar every step is multiplied by: sign * learning rate.
func (s SGD) Factor() float64 {
	return s.Convention.Sign() * s.LearningRate
}

// Delta turns a layer's steps into the deltas added to its parameters, in place:
// dW = sign * lr * dW, dB = sign * lr * dB.
func (s SGD) Delta(dW *mat.Dense, dB *mat.VecDense) {
	f := s.Factor()
	dW.Scale(f, dW)
	dB.ScaleVec(f, dB)
}

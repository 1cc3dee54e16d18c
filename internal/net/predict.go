package net

import (
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
)

// Prediction is a decoded network output.
type Prediction struct {
	// Class is the argmax for softmax networks, -1 otherwise.
	Class int
	// Bits holds the thresholded outputs for sigmoid networks.
	Bits   []int
	Output []float64
}

// Threshold returns 1 for every output unit above 0.5 and 0 otherwise.
func (n *Network) Threshold(x []float64) ([]int, error) {
	c, err := n.Forward(x)
	if err != nil {
		return nil, err
	}
	return threshold(c.Output()), nil
}

func threshold(y []float64) []int {
	bits := make([]int, len(y))
	for i, v := range y {
		if v > 0.5 {
			bits[i] = 1
		}
	}
	return bits
}

// Classify returns the index of the most probable class. Ties go to the
// lowest index.
func (n *Network) Classify(x []float64) (int, error) {
	c, err := n.Forward(x)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(c.Output()), nil
}

// Predict runs x forward and decodes it according to the output activation.
func (n *Network) Predict(x []float64) (Prediction, error) {
	c, err := n.Forward(x)
	if err != nil {
		return Prediction{}, err
	}
	y := c.Output()
	p := Prediction{Class: -1, Output: append([]float64(nil), y...)}
	if n.OutputKind() == activations.KindSoftmax {
		p.Class = floats.MaxIdx(y)
	} else {
		p.Bits = threshold(y)
	}
	return p, nil
}

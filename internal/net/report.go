package net

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// WriteParams prints every layer's weights and biases as W1 b1 W2 b2 ...
func (n *Network) WriteParams(w io.Writer) error {
	for i, l := range n.layers {
		if _, err := fmt.Fprintf(w, "W%d =\n%v\n", i+1, mat.Formatted(l.Weights(), mat.Prefix("    "), mat.Squeeze())); err != nil {
			return err
		}
		b := l.Biases()
		if _, err := fmt.Fprintf(w, "b%d =\n%v\n", i+1, mat.Formatted(b.T(), mat.Prefix("    "), mat.Squeeze())); err != nil {
			return err
		}
	}
	return nil
}

// Summary prints a summary of the network architecture.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Feedforward")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	totalParams := 0
	for i, l := range n.layers {
		params := l.NumParams()
		totalParams += params
		name := fmt.Sprintf("Dense_%d (%s)", i, l.Kind())
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", name, fmt.Sprintf("(%d)", l.OutSize()), params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
	fmt.Fprintf(w, "Loss: %T  Convention: %s  Learning rate: %g\n", n.loss, n.cfg.Convention, n.cfg.LearningRate)
	fmt.Fprintln(w, "_________________________________________________________________")
}

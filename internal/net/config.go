package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/layer"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/opt"
)

// Config describes a network's shape and training rule. It is fixed at
// construction; a Network never changes shape afterwards.
type Config struct {
	// Sizes lists the input size, every hidden size, then the output size.
	Sizes []int
	// Activations holds one kind per layer (len(Sizes)-1). Softmax is only
	// allowed on the last layer.
	Activations []activations.Kind
	// BiasInit selects random or zero starting biases.
	BiasInit layer.BiasInit
	// Convention pairs the output-error definition with the update direction.
	Convention opt.Convention
	// Loss must match the output activation: SquaredError for sigmoid,
	// CrossEntropy for softmax.
	Loss         loss.Loss
	LearningRate float64
}

// XORConfig returns the 2 -> hidden... -> 1 sigmoid network with random
// biases that learns XOR. Errors are (t - y) and steps are added.
func XORConfig(learningRate float64, hidden ...int) Config {
	sizes := append(append([]int{2}, hidden...), 1)
	acts := make([]activations.Kind, len(sizes)-1)
	for i := range acts {
		acts[i] = activations.KindSigmoid
	}
	return Config{
		Sizes:        sizes,
		Activations:  acts,
		BiasInit:     layer.BiasUniform,
		Convention:   opt.TargetMinusPredicted,
		Loss:         loss.SquaredError{},
		LearningRate: learningRate,
	}
}

// ClassifierConfig returns an in -> hidden... -> classes network with sigmoid
// hidden layers, a softmax output and zero biases. Errors are (y - t) and
// steps are subtracted.
func ClassifierConfig(in, classes int, learningRate float64, hidden ...int) Config {
	sizes := append(append([]int{in}, hidden...), classes)
	acts := make([]activations.Kind, len(sizes)-1)
	for i := range acts {
		acts[i] = activations.KindSigmoid
	}
	acts[len(acts)-1] = activations.KindSoftmax
	return Config{
		Sizes:        sizes,
		Activations:  acts,
		BiasInit:     layer.BiasZero,
		Convention:   opt.PredictedMinusTarget,
		Loss:         loss.CrossEntropy{},
		LearningRate: learningRate,
	}
}

// Validate checks that the configuration describes a trainable network.
func (c Config) Validate() error {
	if len(c.Sizes) < 2 {
		return errors.Errorf("net: need at least input and output sizes, got %v", c.Sizes)
	}
	for i, s := range c.Sizes {
		if s <= 0 {
			return errors.Errorf("net: size %d must be positive, got %d", i, s)
		}
	}
	if len(c.Activations) != len(c.Sizes)-1 {
		return errors.Errorf("net: need %d activations, got %d", len(c.Sizes)-1, len(c.Activations))
	}
	last := len(c.Activations) - 1
	for i, k := range c.Activations {
		if _, err := k.MarshalText(); err != nil {
			return errors.Wrapf(err, "net: layer %d", i)
		}
		if k == activations.KindSoftmax && i != last {
			return errors.Errorf("net: softmax is only allowed on the output layer, found on layer %d", i)
		}
	}
	if _, err := c.BiasInit.MarshalText(); err != nil {
		return errors.Wrap(err, "net")
	}
	if err := (opt.SGD{LearningRate: c.LearningRate, Convention: c.Convention}).Validate(); err != nil {
		return errors.Wrap(err, "net")
	}

	out := c.Activations[last]
	switch c.Loss.(type) {
	case nil:
		return errors.New("net: loss is required")
	case loss.CrossEntropy:
		if out != activations.KindSoftmax {
			return errors.Errorf("net: cross-entropy needs a softmax output, got %v", out)
		}
	case loss.SquaredError:
		if out != activations.KindSigmoid {
			return errors.Errorf("net: squared error needs a sigmoid output, got %v", out)
		}
	}
	return nil
}

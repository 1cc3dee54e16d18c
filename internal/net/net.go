// Package net provides the feedforward network, its backpropagation and the
// stochastic training loop.
package net

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/layer"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/opt"
)

// Network is an ordered stack of dense layers trained by SGD.
// The layers' parameters are its only mutable state.
type Network struct {
	layers []*layer.Dense
	loss   loss.Loss
	opt    opt.SGD
	cfg    Config
}

// New creates a network from cfg, drawing initial parameters from src.
// Layers are initialized in order, so one seeded source gives one network.
func New(cfg Config, src rand.Source) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layers := make([]*layer.Dense, len(cfg.Activations))
	for i, kind := range cfg.Activations {
		d, err := layer.NewDense(cfg.Sizes[i], cfg.Sizes[i+1], kind, cfg.BiasInit, src)
		if err != nil {
			return nil, errors.Wrapf(err, "net: layer %d", i)
		}
		layers[i] = d
	}

	cfg.Sizes = append([]int(nil), cfg.Sizes...)
	cfg.Activations = append([]activations.Kind(nil), cfg.Activations...)
	return &Network{
		layers: layers,
		loss:   cfg.Loss,
		opt:    opt.SGD{LearningRate: cfg.LearningRate, Convention: cfg.Convention},
		cfg:    cfg,
	}, nil
}

// Cache holds everything one forward pass computed. It is owned by the
// caller and only meaningful for the parameters it was computed with.
type Cache struct {
	Input *mat.VecDense
	// Pre[i] and Activations[i] are layer i's z and f(z).
	Pre         []*mat.VecDense
	Activations []*mat.VecDense
}

// Output returns the final layer's activation.
func (c *Cache) Output() []float64 {
	return c.Activations[len(c.Activations)-1].RawVector().Data
}

// layerInput returns the vector layer i consumed.
func (c *Cache) layerInput(i int) *mat.VecDense {
	if i == 0 {
		return c.Input
	}
	return c.Activations[i-1]
}

// Forward performs a forward pass through all layers.
// It does not modify the network.
func (n *Network) Forward(x []float64) (*Cache, error) {
	if len(x) != n.InSize() {
		return nil, layer.NewShapeError("net.Forward", []int{n.InSize()}, []int{len(x)})
	}

	c := &Cache{
		Input:       mat.NewVecDense(len(x), append([]float64(nil), x...)),
		Pre:         make([]*mat.VecDense, len(n.layers)),
		Activations: make([]*mat.VecDense, len(n.layers)),
	}
	var curr mat.Vector = c.Input
	for i, l := range n.layers {
		z, a, err := l.Forward(curr)
		if err != nil {
			return nil, errors.Wrapf(err, "net: layer %d", i)
		}
		c.Pre[i] = z
		c.Activations[i] = a
		curr = a
	}
	return c, nil
}

// Steps holds, per layer, the outer product of the error signal with the layer
// input and the error signal itself. They are signed by the network's
// Convention and not yet scaled by the learning rate.
type Steps struct {
	Weights []*mat.Dense
	Biases  []*mat.VecDense
}

// Backward computes the per-layer steps for one cached forward pass.
//
// The output error follows the configured convention, (t - y) or (y - t), and
// is multiplied by the output activation's derivative (sigmoid) or used as is
// (softmax with cross-entropy). Each hidden error is the transpose of the next
// layer's weights applied to the next error, times the local sigmoid
// derivative. Weights are read before any update is applied.
func (n *Network) Backward(c *Cache, target []float64) (*Steps, error) {
	if len(target) != n.OutSize() {
		return nil, layer.NewShapeError("net.Backward target", []int{n.OutSize()}, []int{len(target)})
	}
	if len(c.Activations) != len(n.layers) {
		return nil, layer.NewShapeError("net.Backward cache", []int{len(n.layers)}, []int{len(c.Activations)})
	}

	last := len(n.layers) - 1
	steps := &Steps{
		Weights: make([]*mat.Dense, len(n.layers)),
		Biases:  make([]*mat.VecDense, len(n.layers)),
	}

	y := c.Output()
	delta := mat.NewVecDense(len(y), nil)
	raw := delta.RawVector().Data
	n.opt.Convention.OutputError(raw, n.loss.Backward(y, target))

	for i := last; i >= 0; i-- {
		l := n.layers[i]
		if i < last {
			// Error arriving from layer i+1: W_{i+1}^T · delta_{i+1}.
			next := mat.NewVecDense(l.OutSize(), nil)
			next.MulVec(n.layers[i+1].Weights().T(), delta)
			delta = next
		}

		deriv := mat.NewVecDense(l.OutSize(), nil)
		l.Activation().Derivative(deriv.RawVector().Data, c.Activations[i].RawVector().Data)
		delta.MulElemVec(delta, deriv)

		dW := mat.NewDense(l.OutSize(), l.InSize(), nil)
		dW.Outer(1, delta, c.layerInput(i))
		steps.Weights[i] = dW
		steps.Biases[i] = mat.VecDenseCopyOf(delta)
	}
	return steps, nil
}

// Step applies the steps to every layer: params += sign * lr * step.
// The steps are consumed.
func (n *Network) Step(s *Steps) error {
	if len(s.Weights) != len(n.layers) || len(s.Biases) != len(n.layers) {
		return layer.NewShapeError("net.Step", []int{len(n.layers)}, []int{len(s.Weights), len(s.Biases)})
	}
	for i := range n.layers {
		r, c := s.Weights[i].Dims()
		if r != n.layers[i].OutSize() || c != n.layers[i].InSize() || s.Biases[i].Len() != n.layers[i].OutSize() {
			return layer.NewShapeError("net.Step layer", []int{n.layers[i].OutSize(), n.layers[i].InSize()}, []int{r, c})
		}
	}
	for i, l := range n.layers {
		n.opt.Delta(s.Weights[i], s.Biases[i])
		if err := l.ApplyUpdate(s.Weights[i], s.Biases[i]); err != nil {
			return errors.Wrapf(err, "net: layer %d", i)
		}
	}
	return nil
}

// TrainStep performs one stochastic gradient step on a single example and
// returns the loss measured before the update.
func (n *Network) TrainStep(x, target []float64) (float64, error) {
	c, err := n.Forward(x)
	if err != nil {
		return 0, err
	}
	steps, err := n.Backward(c, target)
	if err != nil {
		return 0, err
	}
	l := n.loss.Forward(c.Output(), target)
	if err := n.Step(steps); err != nil {
		return 0, err
	}
	return l, nil
}

// Loss evaluates the configured loss on one example without training.
func (n *Network) Loss(x, target []float64) (float64, error) {
	if len(target) != n.OutSize() {
		return 0, layer.NewShapeError("net.Loss target", []int{n.OutSize()}, []int{len(target)})
	}
	c, err := n.Forward(x)
	if err != nil {
		return 0, err
	}
	return n.loss.Forward(c.Output(), target), nil
}

// MeanLoss evaluates the mean loss over examples.
func (n *Network) MeanLoss(examples []Example) (float64, error) {
	if len(examples) == 0 {
		return 0, ErrNoExamples
	}
	var total float64
	for i, ex := range examples {
		l, err := n.Loss(ex.Input, ex.Target)
		if err != nil {
			return 0, errors.Wrapf(err, "example %d", i)
		}
		total += l
	}
	return total / float64(len(examples)), nil
}

// LossGradient returns dL/dθ for one example, flattened in Params order.
// It is the true loss gradient whatever the convention: -sign * step.
func (n *Network) LossGradient(x, target []float64) ([]float64, error) {
	c, err := n.Forward(x)
	if err != nil {
		return nil, err
	}
	steps, err := n.Backward(c, target)
	if err != nil {
		return nil, err
	}

	sign := -n.opt.Convention.Sign()
	grad := make([]float64, 0, n.NumParams())
	for i := range n.layers {
		r, _ := steps.Weights[i].Dims()
		for j := 0; j < r; j++ {
			for _, v := range steps.Weights[i].RawRowView(j) {
				grad = append(grad, sign*v)
			}
		}
		for _, v := range steps.Biases[i].RawVector().Data {
			grad = append(grad, sign*v)
		}
	}
	return grad, nil
}

// NumParams returns the total number of weights and biases.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.NumParams()
	}
	return total
}

// Params returns all network parameters flattened (copy), layer by layer.
func (n *Network) Params() []float64 {
	params := make([]float64, 0, n.NumParams())
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams overwrites all parameters from a slice laid out like Params.
func (n *Network) SetParams(params []float64) error {
	if len(params) != n.NumParams() {
		return layer.NewShapeError("net.SetParams", []int{n.NumParams()}, []int{len(params)})
	}
	offset := 0
	for _, l := range n.layers {
		k := l.NumParams()
		if err := l.SetParams(params[offset : offset+k]); err != nil {
			return err
		}
		offset += k
	}
	return nil
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// Config returns the configuration the network was built from.
func (n *Network) Config() Config {
	return n.cfg
}

// InSize returns the expected input length.
func (n *Network) InSize() int {
	return n.layers[0].InSize()
}

// OutSize returns the output length.
func (n *Network) OutSize() int {
	return n.layers[len(n.layers)-1].OutSize()
}

// OutputKind returns the activation kind of the output layer.
func (n *Network) OutputKind() activations.Kind {
	return n.layers[len(n.layers)-1].Kind()
}

// Package feedforward is the public entry point to the multilayer perceptron:
// presets for the XOR and trading classifier variants, the trainer, datasets
// and the decision endpoint.
package feedforward

import (
	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/layer"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/net"
	"github.com/FlavioCFOliveira/feedforward/internal/opt"
	"github.com/FlavioCFOliveira/feedforward/internal/server"
)

// Re-export common types and functions for easier access
type (
	Network     = net.Network
	Config      = net.Config
	Trainer     = net.Trainer
	State       = net.State
	Example     = net.Example
	Prediction  = net.Prediction
	Cache       = net.Cache
	Callback    = net.Callback
	Logger      = net.Logger
	LossHistory = net.LossHistory
	CSVLogger   = net.CSVLogger

	ShapeError = layer.ShapeError
	BiasInit   = layer.BiasInit
	Convention = opt.Convention
	Activation = activations.Kind
	Loss       = loss.Loss

	Handler  = server.Handler
	Notifier = server.Notifier
)

// Training rule options
const (
	BiasUniform          = layer.BiasUniform
	BiasZero             = layer.BiasZero
	TargetMinusPredicted = opt.TargetMinusPredicted
	PredictedMinusTarget = opt.PredictedMinusTarget
	Sigmoid              = activations.KindSigmoid
	Softmax              = activations.KindSoftmax
)

// Trading labels
const (
	Buy    = net.ClassBuy
	Sell   = net.ClassSell
	Ignore = net.ClassIgnore
)

// ErrNoExamples is returned when training an empty example set.
var ErrNoExamples = net.ErrNoExamples

// Losses
var (
	SquaredError = loss.SquaredError{}
	CrossEntropy = loss.CrossEntropy{}
)

// Network creation
func New(cfg Config, src rand.Source) (*Network, error) {
	return net.New(cfg, src)
}

func XOR(learningRate float64, hidden ...int) Config {
	return net.XORConfig(learningRate, hidden...)
}

func Classifier(in, classes int, learningRate float64, hidden ...int) Config {
	return net.ClassifierConfig(in, classes, learningRate, hidden...)
}

// NewTrainer creates a trainer sampling with rng.
func NewTrainer(n *Network, rng *rand.Rand, callbacks ...Callback) *Trainer {
	return net.NewTrainer(n, rng, callbacks...)
}

// NewRand returns the seeded generator used for both initialization and sampling.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Datasets
func XORExamples() []Example     { return net.XORExamples() }
func TradingExamples() []Example { return net.TradingExamples() }

func LoadCSV(filename string, labelCol, classes int, hasHeader bool) ([]Example, error) {
	return net.LoadCSV(filename, labelCol, classes, hasHeader)
}

// IsShapeError reports whether err carries a *ShapeError.
func IsShapeError(err error) bool {
	return layer.IsShapeError(err)
}

// NewHandler serves the decisions of a trained trading classifier.
func NewHandler(n *Network, notifier Notifier) *Handler {
	return server.New(n, server.WithNotifier(notifier))
}

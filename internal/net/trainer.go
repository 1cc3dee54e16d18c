package net

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/feedforward/internal/layer"
)

// ErrNoExamples is returned when training is asked to sample from an empty set.
var ErrNoExamples = errors.New("net: no training examples")

// State is the trainer's position in the sample, forward, backward, update cycle.
type State int

const (
	Idle State = iota
	Sampling
	ForwardPass
	BackwardPass
	Update
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	case ForwardPass:
		return "forward"
	case BackwardPass:
		return "backward"
	case Update:
		return "update"
	default:
		return "unknown"
	}
}

// Trainer drives stochastic training of a Network. Each epoch draws one
// example uniformly, with replacement, and performs one update.
type Trainer struct {
	net       *Network
	rng       *rand.Rand
	callbacks []Callback
	state     State
}

// NewTrainer creates a trainer for n that samples with rng. Passing the rng
// that initialized n makes a whole run reproducible from one seed.
func NewTrainer(n *Network, rng *rand.Rand, callbacks ...Callback) *Trainer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Trainer{net: n, rng: rng, callbacks: callbacks}
}

// State returns the current training state. It is Idle outside Train.
func (t *Trainer) State() State {
	return t.state
}

// Network returns the network being trained.
func (t *Trainer) Network() *Network {
	return t.net
}

// Train runs epochs single-example updates. Every example is checked against
// the network's shape before the first update, so a malformed set leaves the
// parameters untouched.
func (t *Trainer) Train(examples []Example, epochs int) error {
	if epochs <= 0 {
		return nil
	}
	if len(examples) == 0 {
		return ErrNoExamples
	}
	for i, ex := range examples {
		if len(ex.Input) != t.net.InSize() {
			return errors.Wrapf(layer.NewShapeError("net.Train input", []int{t.net.InSize()}, []int{len(ex.Input)}), "example %d", i)
		}
		if len(ex.Target) != t.net.OutSize() {
			return errors.Wrapf(layer.NewShapeError("net.Train target", []int{t.net.OutSize()}, []int{len(ex.Target)}), "example %d", i)
		}
	}

	for _, cb := range t.callbacks {
		cb.OnTrainBegin(t.net)
	}
	defer func() {
		t.state = Idle
		for _, cb := range t.callbacks {
			cb.OnTrainEnd(t.net)
		}
	}()

	for step := 1; step <= epochs; step++ {
		t.state = Sampling
		ex := examples[t.rng.Intn(len(examples))]

		t.state = ForwardPass
		c, err := t.net.Forward(ex.Input)
		if err != nil {
			return errors.Wrapf(err, "step %d", step)
		}
		l := t.net.loss.Forward(c.Output(), ex.Target)

		t.state = BackwardPass
		steps, err := t.net.Backward(c, ex.Target)
		if err != nil {
			return errors.Wrapf(err, "step %d", step)
		}

		t.state = Update
		if err := t.net.Step(steps); err != nil {
			return errors.Wrapf(err, "step %d", step)
		}

		for _, cb := range t.callbacks {
			cb.OnStepEnd(step, l, t.net)
		}
	}
	return nil
}

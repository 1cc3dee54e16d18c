package net

import (
	"log"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnStepEnd(step int, loss float64, n *Network)
	OnTrainEnd(n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                      {}
func (c BaseCallback) OnStepEnd(step int, loss float64, n *Network) {}
func (c BaseCallback) OnTrainEnd(n *Network)                        {}

// window accumulates per-step losses between reports.
type window struct {
	sum   float64
	count int
}

func (w *window) add(loss float64) {
	w.sum += loss
	w.count++
}

func (w *window) flush() float64 {
	if w.count == 0 {
		return 0
	}
	mean := w.sum / float64(w.count)
	w.sum, w.count = 0, 0
	return mean
}

// Logger logs the mean step loss every Interval steps.
type Logger struct {
	BaseCallback
	Interval int
	// Out defaults to log.Default().
	Out *log.Logger

	w window
}

func (c *Logger) OnStepEnd(step int, loss float64, n *Network) {
	if c.Interval <= 0 {
		return
	}
	c.w.add(loss)
	if step%c.Interval == 0 {
		out := c.Out
		if out == nil {
			out = log.Default()
		}
		out.Printf("step %d: loss = %.6f", step, c.w.flush())
	}
}

// LossHistory records the mean step loss of every Interval steps.
type LossHistory struct {
	BaseCallback
	Interval int
	Losses   []float64

	w window
}

func (c *LossHistory) OnTrainBegin(n *Network) {
	c.w = window{}
}

func (c *LossHistory) OnStepEnd(step int, loss float64, n *Network) {
	if c.Interval <= 0 {
		return
	}
	c.w.add(loss)
	if step%c.Interval == 0 {
		c.Losses = append(c.Losses, c.w.flush())
	}
}

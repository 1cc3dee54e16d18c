// Package loss provides the loss functions the network trains against.
package loss

import "math"

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. the output layer,
	// as consumed by that layer's activation derivative.
	Backward(yPred, yTrue []float64) []float64

	// BackwardInPlace is Backward writing into grad.
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// SquaredError is half the sum of squared errors: 0.5 * sum((y_pred - y_true)^2).
// Paired with a sigmoid output layer.
type SquaredError struct{}

// Forward computes 0.5 * sum((y_pred - y_true)^2).
func (SquaredError) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("SquaredError: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return 0.5 * sum
}

// Backward computes dL/dy_pred = y_pred - y_true.
func (s SquaredError) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	s.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes the gradient and stores it in grad.
func (SquaredError) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("SquaredError: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}

// CrossEntropy loss for classification, paired with a softmax output layer.
type CrossEntropy struct{}

// eps clips predictions away from log(0).
const eps = 1e-12

// Forward computes cross entropy: -sum(y_true * log(y_pred)).
func (CrossEntropy) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("CrossEntropy: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		if yTrue[i] == 0 {
			continue
		}
		sum -= yTrue[i] * math.Log(math.Max(yPred[i], eps))
	}
	return sum
}

// Backward computes the gradient of cross entropy through softmax w.r.t. the
// scores, which simplifies to (y_pred - y_true).
func (c CrossEntropy) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	c.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes the gradient and stores it in grad.
func (CrossEntropy) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("CrossEntropy: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}

package model

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultIters        = 400
	defaultLearningRate = 0.15
)

// Classifier is a trainable binary classifier with predict-probability
// output. The pipeline only depends on this contract, not on the model
// family behind it.
type Classifier interface {
	Train(features [][]float64, labels []float64) error
	PredictProba(features []float64) (float64, error)
}

// Logistic is a logistic regression trained by gradient descent on
// log-loss over standardized features.
type Logistic struct {
	iters int
	lr    float64

	weights []float64 // weights[0] is the bias term
	mean    []float64
	std     []float64
}

// NewLogistic creates an untrained logistic regression classifier.
func NewLogistic() *Logistic {
	return &Logistic{
		iters: defaultIters,
		lr:    defaultLearningRate,
	}
}

// Train fits the model. Labels must be 0 or 1 and every feature vector must
// have the same width.
func (l *Logistic) Train(features [][]float64, labels []float64) error {
	if len(features) == 0 {
		return errors.New("no training samples")
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%d feature rows but %d labels", len(features), len(labels))
	}

	width := len(features[0])
	for i, row := range features {
		if len(row) != width {
			return fmt.Errorf("feature row %d has width %d, want %d", i, len(row), width)
		}
	}

	l.mean, l.std = standardParams(features, width)

	scaled := make([][]float64, len(features))
	for i, row := range features {
		scaled[i] = l.scale(row)
	}

	// Gradient descent on log-loss; gradient of the per-sample loss is
	// (p - y) * x.
	w := make([]float64, width+1)
	n := float64(len(scaled))
	for iter := 0; iter < l.iters; iter++ {
		for i, x := range scaled {
			p := sigmoid(w[0] + dot(w[1:], x))
			err := p - labels[i]
			w[0] -= l.lr * err / n
			for k, xv := range x {
				w[k+1] -= l.lr * err * xv / n
			}
		}
	}

	l.weights = w
	return nil
}

// PredictProba returns the probability of the positive class.
func (l *Logistic) PredictProba(features []float64) (float64, error) {
	if l.weights == nil {
		return 0, errors.New("classifier is not trained")
	}
	if len(features) != len(l.weights)-1 {
		return 0, fmt.Errorf("feature width %d, want %d", len(features), len(l.weights)-1)
	}
	x := l.scale(features)
	return sigmoid(l.weights[0] + dot(l.weights[1:], x)), nil
}

func (l *Logistic) scale(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = (v - l.mean[i]) / l.std[i]
	}
	return out
}

func standardParams(features [][]float64, width int) (mean, std []float64) {
	mean = make([]float64, width)
	std = make([]float64, width)
	n := float64(len(features))

	for _, row := range features {
		for i, v := range row {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	for _, row := range features {
		for i, v := range row {
			d := v - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
		if std[i] == 0 {
			std[i] = 1
		}
	}

	return mean, std
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

package riskmodel

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Classifier is a fitted binary logistic regression over standardized
// features.
type Classifier struct {
	weights   []float64
	intercept float64
	status    string
	iters     int
}

// FitLogistic fits an L2-regularized logistic regression with L-BFGS.
//
// The objective is mean log-loss plus ||w||^2 / (2*C*n); the intercept is
// not penalized. y holds 0/1 labels.
func FitLogistic(x [][]float64, y []float64, cfg Config) (*Classifier, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("fit logistic: %d rows but %d labels", n, len(y))
	}
	d := len(x[0])
	alpha := 1 / (cfg.C * float64(n))
	invN := 1 / float64(n)

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			w, b := p[:d], p[d]
			var loss float64
			for i, row := range x {
				z := floats.Dot(w, row) + b
				loss += softplus(z) - y[i]*z
			}
			return loss*invN + 0.5*alpha*floats.Dot(w, w)
		},
		Grad: func(grad, p []float64) {
			w, b := p[:d], p[d]
			for k := range grad {
				grad[k] = 0
			}
			for i, row := range x {
				r := sigmoid(floats.Dot(w, row)+b) - y[i]
				floats.AddScaled(grad[:d], r, row)
				grad[d] += r
			}
			floats.Scale(invN, grad)
			floats.AddScaled(grad[:d], alpha, w)
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: cfg.Tolerance,
		MajorIterations:   cfg.MaxIterations,
	}

	result, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, fmt.Errorf("fit logistic: %w", err)
	}
	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("fit logistic: non-finite coefficients (status %s)", result.Status)
		}
	}
	if err != nil {
		// The optimizer keeps the best location seen; a line-search stall
		// close to the optimum is not worth failing the build for.
		slog.Debug("logistic fit stopped early", "status", result.Status.String(), "error", err)
	}

	return &Classifier{
		weights:   append([]float64(nil), result.X[:d]...),
		intercept: result.X[d],
		status:    result.Status.String(),
		iters:     result.Stats.MajorIterations,
	}, nil
}

// Probability returns P(needs care) for an already standardized row.
func (c *Classifier) Probability(z []float64) float64 {
	return sigmoid(floats.Dot(c.weights, z) + c.intercept)
}

// Weights returns a copy of the standardized-space weights.
func (c *Classifier) Weights() []float64 { return append([]float64(nil), c.weights...) }

// Intercept returns the bias term.
func (c *Classifier) Intercept() float64 { return c.intercept }

// Status is the optimizer's termination status.
func (c *Classifier) Status() string { return c.status }

// Iterations is the number of L-BFGS major iterations used.
func (c *Classifier) Iterations() int { return c.iters }

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softplus computes log(1 + e^z) without overflow.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

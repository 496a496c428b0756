package riskmodel

import "fmt"

// Config holds the dataset synthesis and fitting parameters.
type Config struct {
	Seed    uint64 // PRNG seed for the synthetic dataset
	Samples int    // number of synthetic patients

	// C is the inverse L2 regularization strength. The intercept is not
	// regularized.
	C float64

	// Tolerance is the gradient infinity-norm at which L-BFGS stops.
	Tolerance float64

	// MaxIterations caps L-BFGS major iterations.
	MaxIterations int
}

// DefaultConfig returns the reference parameters: seed 42, 1500 patients,
// C=1, tolerance 1e-4, 100 iterations.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Samples:       1500,
		C:             1.0,
		Tolerance:     1e-4,
		MaxIterations: 100,
	}
}

// Validate rejects configurations that cannot produce a model.
func (c Config) Validate() error {
	// Standardization needs at least two rows.
	if c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}
	if c.C <= 0 {
		return fmt.Errorf("regularization C must be positive, got %g", c.C)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance)
	}
	return nil
}

// Package riskmodel builds the home-care risk classifier: it synthesizes a
// labeled patient population from a fixed seed, fits a standardizing scaler
// and an L2 logistic regression, and exposes the result as an immutable
// Model that is safe to share across goroutines.
package riskmodel

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"

	"github.com/abhisek/previda/internal/patient"
)

// Model is a fitted scaler and classifier pair. It is never mutated after
// Build returns.
type Model struct {
	scaler     *Scaler
	classifier *Classifier
	cfg        Config

	samples   int
	positives int
	accuracy  float64
}

// FeatureWeight is a named standardized-space coefficient.
type FeatureWeight struct {
	Feature string  `json:"feature" yaml:"feature"`
	Mean    float64 `json:"mean" yaml:"mean"`
	Scale   float64 `json:"scale" yaml:"scale"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// Build synthesizes the training set and fits the model. It is
// deterministic for a given Config.
func Build(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model config: %w", err)
	}

	ds := GenerateDataset(cfg.Seed, cfg.Samples)
	return Fit(ds, cfg)
}

// Fit trains a model on an existing dataset.
func Fit(ds *Dataset, cfg Config) (*Model, error) {
	x, y := ds.Matrix()

	scaler, err := FitScaler(x)
	if err != nil {
		return nil, err
	}
	z := scaler.TransformAll(x)

	clf, err := FitLogistic(z, y, cfg)
	if err != nil {
		return nil, err
	}

	m := &Model{
		scaler:     scaler,
		classifier: clf,
		cfg:        cfg,
		samples:    len(ds.Samples),
		positives:  ds.Positives(),
	}

	correct := 0
	for i, row := range z {
		predicted := clf.Probability(row) >= 0.5
		if predicted == (y[i] == 1) {
			correct++
		}
	}
	m.accuracy = float64(correct) / float64(len(z))

	slog.Debug("risk model fitted",
		"samples", m.samples,
		"positives", m.positives,
		"accuracy", fmt.Sprintf("%.4f", m.accuracy),
		"status", clf.Status(),
		"iterations", clf.Iterations(),
	)
	return m, nil
}

// Probability returns the probability that the patient needs home care.
func (m *Model) Probability(r patient.Record) float64 {
	return m.classifier.Probability(m.scaler.Transform(r.Features()))
}

// Scaler returns the fitted scaler.
func (m *Model) Scaler() *Scaler { return m.scaler }

// Classifier returns the fitted classifier.
func (m *Model) Classifier() *Classifier { return m.classifier }

// Config returns the configuration the model was built with.
func (m *Model) Config() Config { return m.cfg }

// Samples is the training set size.
func (m *Model) Samples() int { return m.samples }

// Positives is the number of training samples labeled as needing care.
func (m *Model) Positives() int { return m.positives }

// Accuracy is the training-set accuracy at a 0.5 cut-off.
func (m *Model) Accuracy() float64 { return m.accuracy }

// Version is the scoring model version recorded with each assessment.
func (m *Model) Version() string { return ModelVersion }

// Coefficients pairs each feature with its scaler statistics and weight.
func (m *Model) Coefficients() []FeatureWeight {
	w := m.classifier.weights
	out := make([]FeatureWeight, len(w))
	for i := range w {
		out[i] = FeatureWeight{
			Feature: patient.FeatureNames[i],
			Mean:    m.scaler.mean[i],
			Scale:   m.scaler.scale[i],
			Weight:  w[i],
		}
	}
	return out
}

// Fingerprint hashes the exact bits of every fitted parameter. Two models
// with the same fingerprint score every record identically.
func (m *Model) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	write := func(vals ...float64) {
		for _, v := range vals {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	write(m.scaler.mean...)
	write(m.scaler.scale...)
	write(m.classifier.weights...)
	write(m.classifier.intercept)
	return hex.EncodeToString(h.Sum(nil))
}

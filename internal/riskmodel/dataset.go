package riskmodel

import (
	"math/rand/v2"

	"github.com/abhisek/previda/internal/patient"
)

// Synthetic label parameters.
const (
	LabelThreshold = 60.0 // risk score above which a patient needs care
	NoiseStdDev    = 5.0
	supportProb    = 0.6 // P(has_family_support = 1)
)

// Sample is one synthetic patient with its hidden risk score and label.
type Sample struct {
	Record    patient.Record
	Score     float64
	NeedsCare bool
}

// Dataset is the synthetic training set.
type Dataset struct {
	Seed    uint64
	Samples []Sample
}

// RiskScore is the synthetic generator's linear score before thresholding.
// It is only used to label training data, never at inference time.
func RiskScore(r patient.Record, noise float64) float64 {
	return 1.5*float64(r.Age-60) +
		10*float64(r.ChronicConditions) +
		25*float64(1-r.FamilySupportFlag()) +
		noise
}

// GenerateDataset draws n synthetic patients from a PCG stream seeded with
// seed. Columns are drawn one after another so that adding a column never
// shifts the values of the ones before it.
func GenerateDataset(seed uint64, n int) *Dataset {
	rng := rand.New(rand.NewPCG(seed, seed))

	column := func(lo, hi int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = lo + rng.IntN(hi-lo)
		}
		return out
	}

	age := column(60, 95)
	chronic := column(0, 5)
	accompaniment := column(0, 10)
	medication := column(0, 12)
	appointments := column(0, 8)
	shopping := column(0, 5)

	support := make([]bool, n)
	for i := range support {
		support[i] = rng.Float64() < supportProb
	}

	ds := &Dataset{Seed: seed, Samples: make([]Sample, n)}
	for i := range ds.Samples {
		rec := patient.Record{
			Age:                   age[i],
			ChronicConditions:     chronic[i],
			AccompanimentRequests: accompaniment[i],
			MedicationRequests:    medication[i],
			AppointmentRequests:   appointments[i],
			ShoppingRequests:      shopping[i],
			FamilySupport:         support[i],
		}
		score := RiskScore(rec, rng.NormFloat64()*NoiseStdDev)
		ds.Samples[i] = Sample{
			Record:    rec,
			Score:     score,
			NeedsCare: score > LabelThreshold,
		}
	}
	return ds
}

// Matrix returns the feature matrix and the 0/1 label vector.
func (d *Dataset) Matrix() ([][]float64, []float64) {
	x := make([][]float64, len(d.Samples))
	y := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		x[i] = s.Record.Features()
		if s.NeedsCare {
			y[i] = 1
		}
	}
	return x, y
}

// Positives counts samples labeled as needing care.
func (d *Dataset) Positives() int {
	n := 0
	for _, s := range d.Samples {
		if s.NeedsCare {
			n++
		}
	}
	return n
}

// Package assign turns a risk probability into an outcome: patients below
// the threshold are independent, the rest get a caregiver profile from an
// ordered rule table and a quote for the requested shift.
package assign

import "github.com/abhisek/previda/internal/patient"

// RiskThreshold is the lowest probability classified as high risk.
const RiskThreshold = 0.65

// Scorer returns the probability that a patient needs home care.
type Scorer interface {
	Probability(patient.Record) float64
}

// Engine assesses records against a shared, read-only Scorer.
type Engine struct {
	scorer    Scorer
	rules     []Rule
	threshold float64
}

// NewEngine creates an engine with the default rules and threshold.
func NewEngine(scorer Scorer) *Engine {
	return &Engine{
		scorer:    scorer,
		rules:     DefaultRules(),
		threshold: RiskThreshold,
	}
}

// Assess scores the record and, when high risk, assigns and quotes.
func (e *Engine) Assess(r patient.Record, hours int) Outcome {
	return decide(e.scorer.Probability(r), r, hours, e.rules, e.threshold)
}

// Assess is the one-shot form of Engine.Assess with the default rules.
func Assess(scorer Scorer, r patient.Record, hours int) Outcome {
	return Decide(scorer.Probability(r), r, hours)
}

// Decide applies the threshold and the default rule table to an already
// computed probability.
func Decide(probability float64, r patient.Record, hours int) Outcome {
	return decide(probability, r, hours, DefaultRules(), RiskThreshold)
}

// NewQuote prices a shift for profile.
func NewQuote(p Profile, hours int) Quote {
	return Quote{
		Profile:        p,
		RequestedHours: hours,
		Total:          p.HourlyRate * int64(hours),
	}
}

func decide(probability float64, r patient.Record, hours int, rules []Rule, threshold float64) Outcome {
	if probability < threshold {
		return Outcome{Status: StatusIndependent, Probability: probability}
	}

	out := Outcome{Status: StatusHighRisk, Probability: probability}
	rule, ok := Match(rules, r)
	if !ok {
		return out
	}
	q := NewQuote(rule.Profile, hours)
	out.Rule = rule.Name
	out.Quote = &q
	return out
}

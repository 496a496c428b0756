package assign

import "github.com/abhisek/previda/internal/patient"

// Caregiver profiles offered by the service.
var (
	ChiefNurse = Profile{
		Name:       "Chief Nurse",
		Specialty:  "Clinical Specialist (ICU/Chronic)",
		HourlyRate: 55000,
	}
	Gerontologist = Profile{
		Name:       "Gerontologist",
		Specialty:  "Companionship and Stimulation",
		HourlyRate: 35000,
	}
	NursingAssistant = Profile{
		Name:       "Nursing Assistant",
		Specialty:  "Basic Support",
		HourlyRate: 24000,
	}
)

// ChronicThreshold is the number of chronic conditions from which a
// clinical specialist is required.
const ChronicThreshold = 3

// Rule maps patients matching When to a caregiver profile.
type Rule struct {
	Name    string
	When    func(patient.Record) bool
	Profile Profile
}

// DefaultRules returns the assignment table in priority order. Clinical
// load outranks living situation, and the last rule always matches.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "chronic-load",
			When:    func(r patient.Record) bool { return r.ChronicConditions >= ChronicThreshold },
			Profile: ChiefNurse,
		},
		{
			Name:    "lives-alone",
			When:    func(r patient.Record) bool { return !r.FamilySupport },
			Profile: Gerontologist,
		},
		{
			Name:    "baseline",
			When:    func(patient.Record) bool { return true },
			Profile: NursingAssistant,
		},
	}
}

// Match returns the first rule whose predicate holds for r.
func Match(rules []Rule, r patient.Record) (Rule, bool) {
	for _, rule := range rules {
		if rule.When(r) {
			return rule, true
		}
	}
	return Rule{}, false
}

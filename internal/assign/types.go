package assign

// Status is the terminal state of one assessment.
type Status string

const (
	StatusIndependent Status = "independent"
	StatusHighRisk    Status = "high-risk"
)

// Profile is a caregiver profile with its hourly rate in COP.
type Profile struct {
	Name       string `json:"name" yaml:"name"`
	Specialty  string `json:"specialty" yaml:"specialty"`
	HourlyRate int64  `json:"hourly_rate" yaml:"hourlyRate"`
}

// Quote is the price of one shift for an assigned profile.
type Quote struct {
	Profile        Profile `json:"profile" yaml:"profile"`
	RequestedHours int     `json:"requested_hours" yaml:"requestedHours"`
	Total          int64   `json:"total" yaml:"total"`
}

// Outcome is the result of one assessment. Quote and Rule are set only for
// high-risk outcomes.
type Outcome struct {
	Status      Status  `json:"status" yaml:"status"`
	Probability float64 `json:"probability" yaml:"probability"`
	Rule        string  `json:"rule,omitempty" yaml:"rule,omitempty"`
	Quote       *Quote  `json:"quote,omitempty" yaml:"quote,omitempty"`
}

// HighRisk reports whether the outcome triggered a caregiver assignment.
func (o Outcome) HighRisk() bool { return o.Status == StatusHighRisk }

// Recommendation is the follow-up advice shown with the outcome.
func (o Outcome) Recommendation() string {
	if o.HighRisk() {
		return "Immediate hiring is recommended to mitigate the risk."
	}
	return "No immediate hiring required. Preventive monitoring is suggested."
}

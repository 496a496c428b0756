package patient

// Interactive-path constants. The front end does not ask for these two
// attributes and submits the population averages instead.
const (
	InteractiveAppointmentRequests = 2
	InteractiveShoppingRequests    = 1
)

// FeatureCount is the width of the model's feature vector.
const FeatureCount = 7

// FeatureNames lists the model features in vector order.
var FeatureNames = [FeatureCount]string{
	"age",
	"chronic_conditions",
	"appointment_accompaniment_requests",
	"medication_pickup_requests",
	"appointment_requests",
	"shopping_assistance_requests",
	"has_family_support",
}

// Record is one patient's attributes as consumed by the risk model.
type Record struct {
	Age                   int  `json:"age" yaml:"age"`
	ChronicConditions     int  `json:"chronic_conditions" yaml:"chronicConditions"`
	AccompanimentRequests int  `json:"appointment_accompaniment_requests" yaml:"accompanimentRequests"`
	MedicationRequests    int  `json:"medication_pickup_requests" yaml:"medicationRequests"`
	AppointmentRequests   int  `json:"appointment_requests" yaml:"appointmentRequests"`
	ShoppingRequests      int  `json:"shopping_assistance_requests" yaml:"shoppingRequests"`
	FamilySupport         bool `json:"has_family_support" yaml:"familySupport"`
}

// NewInteractive builds a record the way the assessment form does, filling
// the attributes it never asks for.
func NewInteractive(age, chronic, accompaniment, medication int, familySupport bool) Record {
	return Record{
		Age:                   age,
		ChronicConditions:     chronic,
		AccompanimentRequests: accompaniment,
		MedicationRequests:    medication,
		AppointmentRequests:   InteractiveAppointmentRequests,
		ShoppingRequests:      InteractiveShoppingRequests,
		FamilySupport:         familySupport,
	}
}

// Features returns the record as a feature vector in FeatureNames order.
func (r Record) Features() []float64 {
	return []float64{
		float64(r.Age),
		float64(r.ChronicConditions),
		float64(r.AccompanimentRequests),
		float64(r.MedicationRequests),
		float64(r.AppointmentRequests),
		float64(r.ShoppingRequests),
		boolToFloat(r.FamilySupport),
	}
}

// FamilySupportFlag returns has_family_support as 0 or 1.
func (r Record) FamilySupportFlag() int {
	if r.FamilySupport {
		return 1
	}
	return 0
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"context"
	"errors"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	Status       string // assessments only
	Purpose      string // LLM events only
	AssessmentID string // LLM events only
}

// AssessmentData is one scored patient as it is written to the log.
type AssessmentData struct {
	Reference string `json:"reference" yaml:"reference"`

	Age                   int  `json:"age" yaml:"age"`
	ChronicConditions     int  `json:"chronic_conditions" yaml:"chronicConditions"`
	AccompanimentRequests int  `json:"accompaniment_requests" yaml:"accompanimentRequests"`
	MedicationRequests    int  `json:"medication_requests" yaml:"medicationRequests"`
	AppointmentRequests   int  `json:"appointment_requests" yaml:"appointmentRequests"`
	ShoppingRequests      int  `json:"shopping_requests" yaml:"shoppingRequests"`
	FamilySupport         bool `json:"family_support" yaml:"familySupport"`
	RequestedHours        int  `json:"requested_hours" yaml:"requestedHours"`

	Probability float64 `json:"probability" yaml:"probability"`
	Status      string  `json:"status" yaml:"status"`
	Rule        string  `json:"rule" yaml:"rule"`
	Profile     string  `json:"profile" yaml:"profile"`
	Specialty   string  `json:"specialty" yaml:"specialty"`
	HourlyRate  int64   `json:"hourly_rate" yaml:"hourlyRate"`
	Total       int64   `json:"total" yaml:"total"`

	ModelVersion     string `json:"model_version" yaml:"modelVersion"`
	ModelFingerprint string `json:"model_fingerprint" yaml:"modelFingerprint"`
}

// Assessment is a stored AssessmentData.
type Assessment struct {
	ID        string    `json:"id" yaml:"id"`
	Sequence  int64     `json:"sequence" yaml:"sequence"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	AssessmentData `yaml:",inline"`
}

// ProfileCount aggregates quoted assessments per caregiver profile.
type ProfileCount struct {
	Profile string `json:"profile" yaml:"profile"`
	Count   int    `json:"count" yaml:"count"`
	Revenue int64  `json:"revenue" yaml:"revenue"`
}

// AssessmentSummary aggregates the whole log.
type AssessmentSummary struct {
	Total           int            `json:"total" yaml:"total"`
	ByStatus        map[string]int `json:"by_status" yaml:"byStatus"`
	ByProfile       []ProfileCount `json:"by_profile" yaml:"byProfile"`
	QuotedRevenue   int64          `json:"quoted_revenue" yaml:"quotedRevenue"`
	MeanProbability float64        `json:"mean_probability" yaml:"meanProbability"`
}

// AssessmentRepo stores and queries assessments.
type AssessmentRepo interface {
	// Append stores data and returns it with its ID, sequence and timestamp.
	Append(ctx context.Context, data AssessmentData) (*Assessment, error)

	// List returns assessments newest first.
	List(ctx context.Context, opts QueryOpts) ([]Assessment, error)

	// Get returns the assessment whose ID equals or starts with id.
	Get(ctx context.Context, id string) (*Assessment, error)

	// Summary aggregates every stored assessment.
	Summary(ctx context.Context) (*AssessmentSummary, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string `json:"provider" yaml:"provider"`
	Model        string `json:"model" yaml:"model"`
	Purpose      string `json:"purpose" yaml:"purpose"`
	InputTokens  int    `json:"input_tokens" yaml:"inputTokens"`
	OutputTokens int    `json:"output_tokens" yaml:"outputTokens"`
	LatencyMs    int64  `json:"latency_ms" yaml:"latencyMs"`
	Success      bool   `json:"success" yaml:"success"`
	ErrorMessage string `json:"error_message" yaml:"errorMessage"`
	RequestBody  string `json:"request_body" yaml:"requestBody"`
	ResponseBody string `json:"response_body" yaml:"responseBody"`
	AssessmentID string `json:"assessment_id,omitempty" yaml:"assessmentID,omitempty"`
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int       `json:"id" yaml:"id"`
	Sequence  int64     `json:"sequence" yaml:"sequence"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	LLMRequestEventData `yaml:",inline"`
}

// PurposeUsage aggregates LLM requests per purpose and model.
type PurposeUsage struct {
	Purpose      string  `json:"purpose" yaml:"purpose"`
	Model        string  `json:"model" yaml:"model"`
	Requests     int     `json:"requests" yaml:"requests"`
	Failures     int     `json:"failures" yaml:"failures"`
	InputTokens  int64   `json:"input_tokens" yaml:"inputTokens"`
	OutputTokens int64   `json:"output_tokens" yaml:"outputTokens"`
	AvgLatencyMs float64 `json:"avg_latency_ms" yaml:"avgLatencyMs"`
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose and model.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// applyOpts adds the common sequence, time and limit filters to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts, extra ...*entsql.Predicate) *entsql.Selector {
	preds := extra
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/careplan"
	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/patient"
	"github.com/abhisek/previda/internal/render"
	"github.com/abhisek/previda/internal/riskmodel"
	"github.com/abhisek/previda/internal/store"
)

// assessmentReport is the json/yaml form of one assessment.
type assessmentReport struct {
	ID             string             `json:"id,omitempty" yaml:"id,omitempty"`
	Reference      string             `json:"reference,omitempty" yaml:"reference,omitempty"`
	Record         patient.Record     `json:"record" yaml:"record"`
	RequestedHours int                `json:"requested_hours" yaml:"requestedHours"`
	Outcome        assign.Outcome     `json:"outcome" yaml:"outcome"`
	Recommendation string             `json:"recommendation" yaml:"recommendation"`
	Model          modelStamp         `json:"model" yaml:"model"`
	Briefing       *careplan.Briefing `json:"briefing,omitempty" yaml:"briefing,omitempty"`
}

type modelStamp struct {
	Version     string `json:"version" yaml:"version"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

func newAssessCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score a patient and quote a caregiver shift",
		Long: `Score one patient's risk of needing home care. High-risk patients are
assigned a caregiver profile and the requested shift is quoted in COP.

Patient attributes come from flags or from a JSON intake file (--file, "-"
for stdin).`,
		Example: `  previda assess --age 82 --chronic 3 --family-support=false --hours 8
  previda assess --file intake.json --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runAssess(cmd)
		},
	}

	f := cmd.Flags()
	f.Int("age", 75, "Patient age (60-100)")
	f.Int("chronic", 1, "Number of chronic conditions (0-5)")
	f.Int("accompaniment", 2, "Appointment accompaniment requests per month (0-10)")
	f.Int("medication", 1, "Medication pickup requests per month (0-10)")
	f.Bool("family-support", true, "Patient has a family support network")
	f.Int("hours", 8, "Requested shift length in hours (4-12)")
	f.StringP("file", "f", "", "Read the patient from a JSON intake file")
	f.String("ref", "", "Reference label stored with the assessment")
	f.Bool("no-save", false, "Do not record the assessment in the local log")
	f.Bool("briefing", false, "Ask the configured LLM for a caregiver briefing")
	addOutputFlag(cmd)
	return cmd
}

func (e *env) runAssess(cmd *cobra.Command) error {
	ctx := cmd.Context()

	format, err := e.outputFormat(cmd)
	if err != nil {
		return err
	}
	in, err := readIntake(cmd)
	if err != nil {
		return err
	}

	model, err := e.buildModel()
	if err != nil {
		return err
	}
	outcome := assign.NewEngine(model).Assess(in.Record, in.RequestedHours)

	report := assessmentReport{
		Reference:      in.Reference,
		Record:         in.Record,
		RequestedHours: in.RequestedHours,
		Outcome:        outcome,
		Recommendation: outcome.Recommendation(),
		Model:          modelStamp{Version: model.Version(), Fingerprint: model.Fingerprint()},
	}

	var st *store.Store
	noSave, _ := cmd.Flags().GetBool("no-save")
	wantBriefing, _ := cmd.Flags().GetBool("briefing")
	if !noSave || wantBriefing {
		if st, err = e.openStore(); err != nil {
			warn(cmd, "Assessment log unavailable", err)
		} else {
			defer st.Close()
		}
	}

	if !noSave && st != nil {
		saved, err := st.AssessmentRepo().Append(ctx, assessmentData(report, model))
		if err != nil {
			warn(cmd, "Could not record assessment", err)
		} else {
			report.ID = saved.ID
		}
	}

	if wantBriefing {
		report.Briefing = e.briefing(llm.WithAssessment(ctx, report.ID), cmd, st, careplan.Input{
			Reference: in.Reference,
			Record:    in.Record,
			Outcome:   outcome,
		})
	}

	out := cmd.OutOrStdout()
	if format != config.OutputText {
		return encode(out, format, report)
	}
	_, err = lipgloss.Fprintln(out, render.Outcome(outcome, render.Options{
		Reference: in.Reference,
		Briefing:  report.Briefing,
	}))
	if err == nil && report.ID != "" {
		fmt.Fprintf(out, "\nSaved as %s\n", shortID(report.ID))
	}
	return err
}

// readIntake builds the patient from --file or from the individual flags.
// Either way the record and hours are range checked.
func readIntake(cmd *cobra.Command) (*patient.Intake, error) {
	f := cmd.Flags()
	ref, _ := f.GetString("ref")

	if path, _ := f.GetString("file"); path != "" {
		data, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return nil, fmt.Errorf("read intake: %w", err)
		}
		in, err := patient.ParseIntake(data)
		if err != nil {
			return nil, err
		}
		if ref != "" {
			in.Reference = ref
		}
		return in, nil
	}

	age, _ := f.GetInt("age")
	chronic, _ := f.GetInt("chronic")
	accompaniment, _ := f.GetInt("accompaniment")
	medication, _ := f.GetInt("medication")
	support, _ := f.GetBool("family-support")
	hours, _ := f.GetInt("hours")

	in := &patient.Intake{
		Reference:      ref,
		Record:         patient.NewInteractive(age, chronic, accompaniment, medication, support),
		RequestedHours: hours,
	}
	if err := in.Record.Validate(); err != nil {
		return nil, err
	}
	if err := patient.ValidateHours(hours); err != nil {
		return nil, err
	}
	return in, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// briefing returns nil on any failure: the assessment stands on its own.
func (e *env) briefing(ctx context.Context, cmd *cobra.Command, st *store.Store, in careplan.Input) *careplan.Briefing {
	if !in.Outcome.HighRisk() {
		warn(cmd, "Briefing skipped: "+careplan.ErrNotHighRisk.Error(), nil)
		return nil
	}

	llmCfg := e.cfg.LLMConfig()
	var events store.EventRepo
	if st != nil {
		events = st.EventRepo()
	}
	provider, err := e.newProvider(ctx, llmCfg, events)
	if err != nil {
		warn(cmd, "LLM provider not configured", err)
		return nil
	}

	if llmCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, llmCfg.Timeout)
		defer cancel()
	}
	b, err := careplan.NewService(provider, careplan.DefaultConfig()).Generate(ctx, in)
	if err != nil {
		if !errors.Is(err, careplan.ErrNotHighRisk) {
			warn(cmd, "Briefing unavailable", err)
		}
		return nil
	}
	return b
}

func assessmentData(r assessmentReport, m *riskmodel.Model) store.AssessmentData {
	rec := r.Record
	d := store.AssessmentData{
		Reference:             r.Reference,
		Age:                   rec.Age,
		ChronicConditions:     rec.ChronicConditions,
		AccompanimentRequests: rec.AccompanimentRequests,
		MedicationRequests:    rec.MedicationRequests,
		AppointmentRequests:   rec.AppointmentRequests,
		ShoppingRequests:      rec.ShoppingRequests,
		FamilySupport:         rec.FamilySupport,
		RequestedHours:        r.RequestedHours,
		Probability:           r.Outcome.Probability,
		Status:                string(r.Outcome.Status),
		Rule:                  r.Outcome.Rule,
		ModelVersion:          m.Version(),
		ModelFingerprint:      m.Fingerprint(),
	}
	if q := r.Outcome.Quote; q != nil {
		d.Profile = q.Profile.Name
		d.Specialty = q.Profile.Specialty
		d.HourlyRate = q.Profile.HourlyRate
		d.Total = q.Total
	}
	return d
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

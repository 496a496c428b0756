package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/render"
	"github.com/abhisek/previda/internal/riskmodel"
	"github.com/abhisek/previda/internal/store"
)

func newHistoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded assessments",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			status, _ := cmd.Flags().GetString("status")
			format, err := e.outputFormat(cmd)
			if err != nil {
				return err
			}
			if status != "" && status != string(assign.StatusHighRisk) && status != string(assign.StatusIndependent) {
				return fmt.Errorf("unknown status %q (want %s or %s)", status, assign.StatusHighRisk, assign.StatusIndependent)
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			items, err := s.AssessmentRepo().List(cmd.Context(), store.QueryOpts{Limit: limit, Status: status})
			if err != nil {
				return fmt.Errorf("query assessments: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != config.OutputText {
				if items == nil {
					items = []store.Assessment{}
				}
				return encode(out, format, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No assessments found.")
				return nil
			}

			rows := make([][]string, len(items))
			for i, a := range items {
				quote := "-"
				if a.Total > 0 {
					quote = render.Money(a.Total)
				}
				rows[i] = []string{
					shortID(a.ID),
					a.Timestamp.Local().Format("2006-01-02 15:04"),
					truncate(a.Reference, 16),
					fmt.Sprintf("%d/%d", a.Age, a.ChronicConditions),
					render.Percent(a.Probability),
					a.Status,
					a.Profile,
					quote,
				}
			}
			_, err = lipgloss.Fprintln(out, render.Table(
				[]string{"ID", "Time", "Reference", "Age/Chronic", "Risk", "Status", "Profile", "Quote"},
				rows,
			))
			return err
		},
	}
	listCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	listCmd.Flags().String("status", "", "Filter by status (high-risk or independent)")
	addOutputFlag(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one assessment (an ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := e.outputFormat(cmd)
			if err != nil {
				return err
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := s.AssessmentRepo().Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("assessment %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("get assessment: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != config.OutputText {
				return encode(out, format, a)
			}

			fmt.Fprintf(out, "ID:         %s\n", a.ID)
			fmt.Fprintf(out, "Time:       %s\n", a.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Patient:    age %d, %d chronic conditions, %d accompaniment and %d medication requests\n",
				a.Age, a.ChronicConditions, a.AccompanimentRequests, a.MedicationRequests)
			support := "yes"
			if !a.FamilySupport {
				support = "no (lives alone)"
			}
			fmt.Fprintf(out, "Support:    %s\n", support)
			fmt.Fprintf(out, "Hours:      %d\n", a.RequestedHours)
			fmt.Fprintf(out, "Model:      %s (%s)\n\n", a.ModelVersion, shortID(a.ModelFingerprint))

			if _, err := lipgloss.Fprintln(out, render.Outcome(storedOutcome(a), render.Options{Reference: a.Reference})); err != nil {
				return err
			}
			if !riskmodel.Compatible(a.ModelVersion) {
				warn(cmd, fmt.Sprintf("Scored by model %s; the current model is %s and may disagree.",
					a.ModelVersion, riskmodel.ModelVersion), nil)
			}
			return nil
		},
	}
	addOutputFlag(showCmd)

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	cmd.AddCommand(newHistoryStatsCmd(e))
	return cmd
}

// storedOutcome rebuilds the outcome that was shown when a was recorded.
func storedOutcome(a *store.Assessment) assign.Outcome {
	o := assign.Outcome{
		Status:      assign.Status(a.Status),
		Probability: a.Probability,
		Rule:        a.Rule,
	}
	if a.Profile != "" {
		o.Quote = &assign.Quote{
			Profile: assign.Profile{
				Name:       a.Profile,
				Specialty:  a.Specialty,
				HourlyRate: a.HourlyRate,
			},
			RequestedHours: a.RequestedHours,
			Total:          a.Total,
		}
	}
	return o
}

// truncate cuts s to max terminal cells without splitting a character.
func truncate(s string, max int) string {
	return ansi.Truncate(s, max, "")
}

func divider(n int) string {
	return strings.Repeat("─", n)
}

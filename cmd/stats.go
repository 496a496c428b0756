package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/render"
)

func newHistoryStatsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show assessment counts, caregiver mix and quoted revenue",
		Args:  cobra.NoArgs,
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

			sum, err := s.AssessmentRepo().Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("summarize assessments: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != config.OutputText {
				return encode(out, format, sum)
			}
			if sum.Total == 0 {
				fmt.Fprintln(out, "No assessments recorded yet.")
				return nil
			}

			high := sum.ByStatus[string(assign.StatusHighRisk)]
			lipgloss.Fprintln(out, render.Title("Assessments"))
			fmt.Fprintln(out, divider(48))
			fmt.Fprintf(out, "%-22s %10d\n", "Total", sum.Total)
			fmt.Fprintf(out, "%-22s %10d\n", "High risk", high)
			fmt.Fprintf(out, "%-22s %10d\n", "Independent", sum.ByStatus[string(assign.StatusIndependent)])
			fmt.Fprintf(out, "%-22s %10s\n", "Mean risk", render.Percent(sum.MeanProbability))
			fmt.Fprintf(out, "%-22s %10s\n", "Quoted revenue (COP)", render.Money(sum.QuotedRevenue))

			if len(sum.ByProfile) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			rows := make([][]string, len(sum.ByProfile))
			for i, p := range sum.ByProfile {
				share := float64(p.Count) / float64(high)
				rows[i] = []string{p.Profile, strconv.Itoa(p.Count), render.Percent(share), render.Money(p.Revenue)}
			}
			_, err = lipgloss.Fprintln(out, render.Table([]string{"Profile", "Shifts", "Share", "Revenue"}, rows))
			return err
		},
	}
	addOutputFlag(cmd)
	return cmd
}

package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/render"
	"github.com/abhisek/previda/internal/store"
)

func newLLMCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect LLM request/response events",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			purpose, _ := cmd.Flags().GetString("purpose")
			assessment, _ := cmd.Flags().GetString("assessment")
			format, err := e.outputFormat(cmd)
			if err != nil {
				return err
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose, AssessmentID: assessment})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != config.OutputText {
				if events == nil {
					events = []store.LLMRequestEvent{}
				}
				return encode(out, format, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(out, divider(116))
			for _, ev := range events {
				ok := "✓"
				if !ev.Success {
					ok = "✗"
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
					ev.ID,
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(ev.Purpose, 14),
					truncate(ev.Provider, 12),
					truncate(ev.Model, 28),
					ev.InputTokens,
					ev.OutputTokens,
					ev.LatencyMs,
					ok,
				)
			}
			return nil
		},
	}
	listCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	listCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. care-briefing)")
	listCmd.Flags().String("assessment", "", "Only requests made for this assessment ID (prefix)")
	addOutputFlag(listCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated LLM token usage and estimated cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			usage, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			var totalCost float64
			unknown := map[string]bool{}
			rows := make([][]string, 0, len(usage))
			for _, u := range usage {
				cost := "?"
				if c, ok := llm.EstimateCost(u.Model, int(u.InputTokens), int(u.OutputTokens)); ok {
					totalCost += c
					cost = formatCost(c)
				} else {
					unknown[u.Model] = true
				}
				rows = append(rows, []string{
					u.Purpose,
					truncate(u.Model, 32),
					strconv.Itoa(u.Requests),
					strconv.Itoa(u.Failures),
					strconv.FormatInt(u.InputTokens, 10),
					strconv.FormatInt(u.OutputTokens, 10),
					strconv.FormatFloat(u.AvgLatencyMs, 'f', 0, 64),
					cost,
				})
			}

			lipgloss.Fprintln(out, render.Title("Usage by Purpose"))
			if _, err := lipgloss.Fprintln(out, render.Table(
				[]string{"Purpose", "Model", "Calls", "Failed", "Input", "Output", "Avg Ms", "Cost"},
				rows,
			)); err != nil {
				return err
			}

			label := "Estimated total (USD)"
			if len(unknown) > 0 {
				label += ", partial"
			}
			fmt.Fprintf(out, "%s: %s\n", label, formatCost(totalCost))
			if len(unknown) > 0 {
				models := make([]string, 0, len(unknown))
				for m := range unknown {
					models = append(models, m)
				}
				sort.Strings(models)
				fmt.Fprintf(out, "Pricing unavailable for: %s\n", strings.Join(models, ", "))
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(statsCmd)
	return cmd
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/patient"
	"github.com/abhisek/previda/internal/render"
	"github.com/abhisek/previda/internal/riskmodel"
)

// modelReport is the json/yaml form of `model info`.
type modelReport struct {
	Version      string                    `json:"version" yaml:"version"`
	Fingerprint  string                    `json:"fingerprint" yaml:"fingerprint"`
	Seed         uint64                    `json:"seed" yaml:"seed"`
	Samples      int                       `json:"samples" yaml:"samples"`
	Positives    int                       `json:"positives" yaml:"positives"`
	Accuracy     float64                   `json:"accuracy" yaml:"accuracy"`
	Threshold    float64                   `json:"threshold" yaml:"threshold"`
	Intercept    float64                   `json:"intercept" yaml:"intercept"`
	Optimizer    string                    `json:"optimizer_status" yaml:"optimizerStatus"`
	Iterations   int                       `json:"iterations" yaml:"iterations"`
	Coefficients []riskmodel.FeatureWeight `json:"coefficients" yaml:"coefficients"`
}

func newModelCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect the risk model",
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the fitted scaler, coefficients and fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := e.outputFormat(cmd)
			if err != nil {
				return err
			}
			m, err := e.buildModel()
			if err != nil {
				return err
			}
			report := newModelReport(m)

			out := cmd.OutOrStdout()
			if format != config.OutputText {
				return encode(out, format, report)
			}
			return printModelInfo(out, report)
		},
	}
	addOutputFlag(infoCmd)

	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Export the synthetic training dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := riskmodel.DefaultConfig()
			if e.cfg != nil {
				rc = e.cfg.RiskModel()
			}
			ds := riskmodel.GenerateDataset(rc.Seed, rc.Samples)

			path, _ := cmd.Flags().GetString("out")
			if path == "" || path == "-" {
				return writeDatasetCSV(cmd.OutOrStdout(), ds)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := writeDatasetCSV(f, ds); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d patients to %s\n", len(ds.Samples), path)
			return nil
		},
	}
	datasetCmd.Flags().String("out", "", "Output CSV path (default stdout)")

	cmd.AddCommand(infoCmd)
	cmd.AddCommand(datasetCmd)
	return cmd
}

func newModelReport(m *riskmodel.Model) modelReport {
	clf := m.Classifier()
	return modelReport{
		Version:      m.Version(),
		Fingerprint:  m.Fingerprint(),
		Seed:         m.Config().Seed,
		Samples:      m.Samples(),
		Positives:    m.Positives(),
		Accuracy:     m.Accuracy(),
		Threshold:    assign.RiskThreshold,
		Intercept:    clf.Intercept(),
		Optimizer:    clf.Status(),
		Iterations:   clf.Iterations(),
		Coefficients: m.Coefficients(),
	}
}

func printModelInfo(w io.Writer, r modelReport) error {
	lipgloss.Fprintln(w, render.Title("Risk Model "+r.Version))
	fmt.Fprintf(w, "Fingerprint:  %s\n", r.Fingerprint)
	fmt.Fprintf(w, "Dataset:      %d synthetic patients (seed %d), %d need care\n", r.Samples, r.Seed, r.Positives)
	fmt.Fprintf(w, "Accuracy:     %s on the training set\n", render.Percent(r.Accuracy))
	fmt.Fprintf(w, "Optimizer:    %s after %d iterations\n", r.Optimizer, r.Iterations)
	fmt.Fprintf(w, "Threshold:    %s\n", render.Percent(r.Threshold))
	fmt.Fprintf(w, "Intercept:    %+.4f\n\n", r.Intercept)

	rows := make([][]string, len(r.Coefficients))
	for i, c := range r.Coefficients {
		rows[i] = []string{
			c.Feature,
			strconv.FormatFloat(c.Mean, 'f', 3, 64),
			strconv.FormatFloat(c.Scale, 'f', 3, 64),
			strconv.FormatFloat(c.Weight, 'f', 4, 64),
		}
	}
	_, err := lipgloss.Fprintln(w, render.Table([]string{"Feature", "Mean", "Scale", "Weight"}, rows))
	return err
}

func writeDatasetCSV(w io.Writer, ds *riskmodel.Dataset) error {
	cw := csv.NewWriter(w)

	header := append(patient.FeatureNames[:len(patient.FeatureNames):len(patient.FeatureNames)], "risk_score", "needs_home_care")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range ds.Samples {
		row := make([]string, 0, len(header))
		for _, v := range s.Record.Features() {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		needs := "0"
		if s.NeedsCare {
			needs = "1"
		}
		row = append(row, strconv.FormatFloat(s.Score, 'f', 4, 64), needs)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

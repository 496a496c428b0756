package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/previda/internal/config"
)

// outputFormat returns --output when given, else the configured default.
func (e *env) outputFormat(cmd *cobra.Command) (string, error) {
	format := config.OutputText
	if e.cfg != nil && e.cfg.Output != "" {
		format = e.cfg.Output
	}
	if cmd.Flags().Changed("output") {
		format, _ = cmd.Flags().GetString("output")
	}
	switch format {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// encode writes v as indented JSON or as YAML.
func encode(w io.Writer, format string, v any) error {
	if format == config.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", config.OutputText, "Output format: text, json or yaml")
}

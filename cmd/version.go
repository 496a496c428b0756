package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/riskmodel"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "previda %s (risk model %s)\n", version, riskmodel.ModelVersion)
		},
	}
}

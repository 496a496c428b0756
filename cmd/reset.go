package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

func newResetCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the local assessment log",
		Long: `Delete the SQLite database holding recorded assessments and LLM events.
The file is recreated on the next assessment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := e.resolveDBPath()
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Would delete %s. Re-run with --yes to confirm.\n", dbPath)
				return nil
			}

			removed := false
			for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
				err := os.Remove(p)
				switch {
				case err == nil:
					removed = removed || p == dbPath
				case errors.Is(err, fs.ErrNotExist):
				default:
					return fmt.Errorf("remove %s: %w", p, err)
				}
			}

			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", dbPath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to delete at %s\n", dbPath)
			}
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm deletion")
	return cmd
}

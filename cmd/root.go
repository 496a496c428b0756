package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/previda/internal/config"
	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/logging"
	"github.com/abhisek/previda/internal/riskmodel"
	"github.com/abhisek/previda/internal/store"
)

// env carries the persistent flags and the loaded configuration into
// every subcommand.
type env struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config

	// newProvider builds the briefing provider. Tests swap it for a mock.
	newProvider func(ctx context.Context, cfg llm.Config, events store.EventRepo) (llm.Provider, error)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "previda",
		Short: "Home-care risk assessment and caregiver quotes",
		Long: `PreVida estimates an elderly patient's risk of needing home care. When the
risk is high it assigns a caregiver profile and quotes the requested shift.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&e.dbPath, "db", "", "Path to SQLite database file (overrides PREVIDA_DB env var)")
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/previda/config.yaml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(newAssessCmd(e))
	root.AddCommand(newModelCmd(e))
	root.AddCommand(newHistoryCmd(e))
	root.AddCommand(newLLMCmd(e))
	root.AddCommand(newResetCmd(e))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the previda command tree.
func Execute() error {
	return newRootCmd(&env{newProvider: llm.NewProvider}).Execute()
}

func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = e.logLevel
	}
	logging.SetDefaultCLILogger(level)
	if cfg.Path != "" {
		slog.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PREVIDA_DB or the config file, then the default XDG path.
func (e *env) resolveDBPath() (string, error) {
	if e.dbPath != "" {
		return e.dbPath, store.EnsureDir(e.dbPath)
	}
	if e.cfg != nil && e.cfg.DBPath != "" {
		return e.cfg.DBPath, store.EnsureDir(e.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func (e *env) openStore() (*store.Store, error) {
	dbPath, err := e.resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	slog.Debug("opened assessment log", "path", dbPath)
	return s, nil
}

// buildModel fits the risk model once for the running command.
func (e *env) buildModel() (*riskmodel.Model, error) {
	rc := riskmodel.DefaultConfig()
	if e.cfg != nil {
		rc = e.cfg.RiskModel()
	}

	start := time.Now()
	m, err := riskmodel.Build(rc)
	if err != nil {
		return nil, fmt.Errorf("build risk model: %w", err)
	}
	slog.Debug("risk model ready",
		"samples", m.Samples(),
		"accuracy", m.Accuracy(),
		"elapsed", time.Since(start))
	return m, nil
}

// warn prints a user-facing notice that does not fail the command.
func warn(cmd *cobra.Command, msg string, err error) {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", msg, err)
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}

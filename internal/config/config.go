// Package config loads previda settings from the YAML config file, a .env
// file and PREVIDA_* environment variables. Command-line flags are applied
// on top by cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/riskmodel"
)

// Output formats accepted by Config.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the merged file and environment configuration.
type Config struct {
	DBPath   string `yaml:"db"`
	LogLevel string `yaml:"logLevel"`
	Output   string `yaml:"output"`

	Model ModelConfig `yaml:"model"`
	LLM   LLMConfig   `yaml:"llm"`

	// Path is the config file that was read, empty when none was found.
	Path string `yaml:"-"`
}

// ModelConfig overrides the risk model's dataset parameters.
type ModelConfig struct {
	Seed    *uint64 `yaml:"seed"`
	Samples int     `yaml:"samples"`
}

// LLMConfig selects the briefing provider. API keys are never read from the
// config file.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"baseURL"`
	Timeout  time.Duration `yaml:"timeout"`
}

// vendorKeys are the vendors' own API key variables, used when a provider
// is selected without a PREVIDA_*_API_KEY.
var vendorKeys = map[string]string{
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Output:   OutputText,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/previda/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "previda", "config.yaml"), nil
}

// Load reads the config file at path, then .env, then the environment.
// An empty path uses DefaultPath and tolerates a missing file; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("PREVIDA_CONFIG"); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		err := cfg.readFile(path)
		switch {
		case err == nil:
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PREVIDA_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PREVIDA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PREVIDA_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("PREVIDA_MODEL_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Model.Seed = &seed
		} else {
			slog.Warn("ignoring invalid PREVIDA_MODEL_SEED", "value", v)
		}
	}
	if v := os.Getenv("PREVIDA_MODEL_SAMPLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Model.Samples = n
		} else {
			slog.Warn("ignoring invalid PREVIDA_MODEL_SAMPLES", "value", v)
		}
	}
}

// Validate rejects values no command can use.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", c.Output)
	}
	if c.Model.Samples < 0 {
		return fmt.Errorf("model samples must not be negative, got %d", c.Model.Samples)
	}
	return nil
}

// RiskModel returns the risk model parameters with the overrides applied.
func (c *Config) RiskModel() riskmodel.Config {
	rc := riskmodel.DefaultConfig()
	if c.Model.Seed != nil {
		rc.Seed = *c.Model.Seed
	}
	if c.Model.Samples > 0 {
		rc.Samples = c.Model.Samples
	}
	return rc
}

// LLMConfig resolves the provider configuration. Without an explicit
// provider the vendors' standard API key variables are probed.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()
	if c.LLM.Provider == "" && os.Getenv("PREVIDA_LLM_PROVIDER") == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg = found
		}
	}

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	if pc := cfg.Selected(); pc != nil {
		if c.LLM.Model != "" {
			pc.Model = c.LLM.Model
		}
		if c.LLM.BaseURL != "" {
			pc.BaseURL = c.LLM.BaseURL
		}
	}

	cfg = llm.ApplyEnv(cfg)
	if pc := cfg.Selected(); pc != nil && pc.APIKey == "" {
		pc.APIKey = os.Getenv(vendorKeys[cfg.Provider])
	}
	return cfg
}

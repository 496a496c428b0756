package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/riskmodel"
)

// isolate points every lookup at empty temp directories and clears the
// variables Load and LLMConfig read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{
		"PREVIDA_CONFIG", "PREVIDA_DB", "PREVIDA_LOG_LEVEL", "PREVIDA_OUTPUT",
		"PREVIDA_MODEL_SEED", "PREVIDA_MODEL_SAMPLES",
		"PREVIDA_LLM_PROVIDER", "PREVIDA_LLM_MODEL", "PREVIDA_LLM_TIMEOUT",
		"PREVIDA_ANTHROPIC_API_KEY", "PREVIDA_OPENAI_API_KEY",
		"PREVIDA_GEMINI_API_KEY", "PREVIDA_OPENROUTER_API_KEY",
		"PREVIDA_OPENROUTER_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, riskmodel.DefaultConfig(), cfg.RiskModel())
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "previda", "config.yaml")
	writeFile(t, path, `
db: /var/lib/previda.db
logLevel: debug
output: yaml
model:
  seed: 7
  samples: 500
llm:
  provider: openrouter
  model: openai/gpt-4o-mini
  timeout: 45s
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "/var/lib/previda.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, OutputYAML, cfg.Output)

	rc := cfg.RiskModel()
	assert.Equal(t, uint64(7), rc.Seed)
	assert.Equal(t, 500, rc.Samples)

	assert.Equal(t, llm.ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "logLevel: info\nmodel:\n  seed: 7\n")

	t.Setenv("PREVIDA_LOG_LEVEL", "error")
	t.Setenv("PREVIDA_MODEL_SEED", "99")
	t.Setenv("PREVIDA_DB", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, uint64(99), cfg.RiskModel().Seed)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "PREVIDA_OUTPUT=json\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "model: [unclosed\n")
	_, err = Load(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	writeFile(t, unknown, "output: xml\n")
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("PREVIDA_MODEL_SEED", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg.Model.Seed)
}

func TestLLMConfig_Discovery(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := Default().LLMConfig()
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLLMConfig_FileSelectsProvider(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	c := Default()
	c.LLM = LLMConfig{Provider: llm.ProviderGemini, Model: "gemini-pro", Timeout: time.Minute}

	cfg := c.LLMConfig()
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "gm-key", cfg.Gemini.APIKey, "vendor key fills the selected provider")
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLLMConfig_EnvWins(t *testing.T) {
	isolate(t)
	t.Setenv("PREVIDA_LLM_PROVIDER", llm.ProviderOpenRouter)
	t.Setenv("PREVIDA_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("PREVIDA_LLM_MODEL", "anthropic/claude-haiku-4.5")

	c := Default()
	c.LLM.Provider = llm.ProviderAnthropic

	cfg := c.LLMConfig()
	assert.Equal(t, llm.ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "sk-or", cfg.OpenRouter.APIKey)
	assert.Equal(t, "anthropic/claude-haiku-4.5", cfg.OpenRouter.Model)
}

func TestLLMConfig_NothingConfigured(t *testing.T) {
	isolate(t)

	cfg := Default().LLMConfig()
	assert.Error(t, cfg.Validate())
}

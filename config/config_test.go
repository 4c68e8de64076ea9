package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gpt-3.5-turbo", cfg.DefaultModel)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 1000, cfg.MemorySize)
	assert.Empty(t, cfg.APIKey)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Validate()

	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "api_key", cfgErr.Setting)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestValidate_NonPositiveMemorySize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.MemorySize = 0

	err := cfg.Validate()

	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "memory_size", cfgErr.Setting)
}

func TestValidate_OK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"

	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("AGENTKIT_API_KEY", "sk-env")
	t.Setenv("AGENTKIT_MEMORY_SIZE", "3")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, 3, cfg.MemorySize)
	assert.Equal(t, "gpt-3.5-turbo", cfg.DefaultModel)
}

func TestLoad_SDKConventionalEnvFallback(t *testing.T) {
	t.Setenv("AGENTKIT_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sk-openai", cfg.APIKey)
	assert.Equal(t, "sk-ant", cfg.AnthropicAPIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("AGENTKIT_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "agentkit.json")
	payload := `{"api_key": "sk-file", "default_model": "gpt-4o-mini", "memory_size": 42}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel)
	assert.Equal(t, 42, cfg.MemorySize)
	// Untouched settings keep their defaults.
	assert.Equal(t, 5, cfg.MaxIterations)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("AGENTKIT_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))

	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MemorySize)
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names honored in addition to the AGENTKIT_ prefixed
// forms, matching the conventional names used by the provider SDKs.
const (
	envOpenAIAPIKey    = "OPENAI_API_KEY"
	envAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Load reads configuration from, in increasing precedence: built-in defaults,
// an optional JSON config file at path (skipped when path is "" or the file
// does not exist), and environment variables with the AGENTKIT_ prefix
// (AGENTKIT_API_KEY, AGENTKIT_MEMORY_SIZE, ...). A .env file in the working
// directory is loaded into the environment first, if present.
//
// Load does not validate; call Validate on the result before handing the
// Config to an agent.
func Load(path string) (*Config, error) {
	// Best effort, mirrors dotenv behavior: a missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AGENTKIT")
	v.AutomaticEnv()

	cfg := DefaultConfig()
	v.SetDefault("api_key", cfg.APIKey)
	v.SetDefault("anthropic_api_key", cfg.AnthropicAPIKey)
	v.SetDefault("default_model", cfg.DefaultModel)
	v.SetDefault("max_tokens", cfg.MaxTokens)
	v.SetDefault("temperature", cfg.Temperature)
	v.SetDefault("max_iterations", cfg.MaxIterations)
	v.SetDefault("memory_size", cfg.MemorySize)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The SDK-conventional variables win only when the prefixed form is unset.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envOpenAIAPIKey)
	}
	if cfg.AnthropicAPIKey == "" {
		cfg.AnthropicAPIKey = os.Getenv(envAnthropicAPIKey)
	}

	return cfg, nil
}

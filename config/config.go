// Package config handles process-wide settings for agentkit: API credentials,
// model tuning values and the agent memory bound. Configuration is loaded once
// at startup (environment variables, optionally a JSON file and a .env file)
// and passed explicitly into each agent at construction. There is no global
// singleton and no reload after load.
package config

import "fmt"

// Config holds all settings consumed by agents, tools and model adapters.
// Fields are read-only after Load; mutate only in tests.
type Config struct {
	// APIKey is the OpenAI API credential. Required.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// AnthropicAPIKey is the optional Anthropic credential.
	AnthropicAPIKey string `json:"anthropic_api_key" mapstructure:"anthropic_api_key"`

	// DefaultModel is the model identifier used when an agent does not
	// override it (e.g. "gpt-3.5-turbo", "claude-3-5-sonnet-20241022").
	DefaultModel string `json:"default_model" mapstructure:"default_model"`

	// MaxTokens caps completion length per model call.
	MaxTokens int `json:"max_tokens" mapstructure:"max_tokens"`

	// Temperature is the sampling temperature for model calls.
	Temperature float64 `json:"temperature" mapstructure:"temperature"`

	// MaxIterations bounds the tool-calling loop of a model agent.
	MaxIterations int `json:"max_iterations" mapstructure:"max_iterations"`

	// MemorySize bounds the interaction log kept by each agent. Must be positive.
	MemorySize int `json:"memory_size" mapstructure:"memory_size"`
}

// DefaultConfig returns a Config populated with the baseline settings.
// The API key is intentionally left empty; Validate rejects it until set.
func DefaultConfig() *Config {
	return &Config{
		DefaultModel:  "gpt-3.5-turbo",
		MaxTokens:     1000,
		Temperature:   0.7,
		MaxIterations: 5,
		MemorySize:    1000,
	}
}

// ConfigError reports a missing or invalid required setting. It aborts agent
// construction and must propagate unchanged to the caller.
type ConfigError struct {
	Setting string // canonical setting name, e.g. "api_key"
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for setting '%s': %s", e.Setting, e.Message)
}

// Validate checks that required configuration is present. It returns a
// *ConfigError naming the offending setting, or nil.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Setting: "api_key", Message: "API key is required"}
	}
	if c.MemorySize <= 0 {
		return &ConfigError{Setting: "memory_size", Message: "memory size must be positive"}
	}
	return nil
}

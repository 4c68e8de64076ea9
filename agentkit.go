// Package agentkit provides a minimal scaffold for building agents that hold
// pluggable tools and a bounded interaction history. Most applications
// interact with this package by:
//  1. Creating an AgentKit via New() (loading and validating configuration)
//  2. Constructing agents: either a ModelAgent through NewModelAgent, or a
//     custom type embedding agent.BaseAgent with its own Execute method
//  3. Registering tools and recording interactions via AddToMemory
//
// The façade delegates the actual behavior to the agent, tool, model and
// config packages while keeping setup ergonomics concise. All defaults are
// safe for local development; supply a structured logger and a config file
// for production use.
package agentkit

import (
	"strings"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/model/anthropic"
	"github.com/hupe1980/agentkit/model/openai"
)

// Options configures the AgentKit instance.
type Options struct {
	// ConfigPath is an optional JSON config file consulted by config.Load.
	ConfigPath string

	// Config overrides loading entirely when set. It is still validated.
	Config *config.Config

	// Logger (defaults to NopLogger if nil).
	Logger logging.Logger
}

// AgentKit is the high-level façade aggregating validated configuration and
// shared services for agent construction.
type AgentKit struct {
	cfg    *config.Config
	logger logging.Logger
}

// New creates a new AgentKit instance. Configuration is loaded (unless
// provided) and validated immediately; a validation failure propagates
// unchanged so callers can fail fast at startup.
func New(optFns ...func(o *Options)) (*AgentKit, error) {
	opts := Options{Logger: logging.NopLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &AgentKit{cfg: cfg, logger: opts.Logger}, nil
}

// Config returns the validated configuration.
func (k *AgentKit) Config() *config.Config { return k.cfg }

// Logger returns the configured logger.
func (k *AgentKit) Logger() logging.Logger { return k.logger }

// NewModelAgent constructs a ModelAgent whose provider adapter is chosen from
// the configured default model id: claude-* models use the Anthropic Messages
// API, everything else the OpenAI Chat Completions API.
func (k *AgentKit) NewModelAgent(name string, optFns ...func(o *agent.ModelAgentOptions)) (*agent.ModelAgent, error) {
	llm := k.newModel()
	withLogger := func(o *agent.ModelAgentOptions) { o.Logger = k.logger }
	return agent.NewModelAgent(k.cfg, name, llm, append([]func(o *agent.ModelAgentOptions){withLogger}, optFns...)...)
}

func (k *AgentKit) newModel() model.Model {
	if strings.HasPrefix(k.cfg.DefaultModel, "claude") {
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = k.cfg.DefaultModel
			o.Temperature = k.cfg.Temperature
			o.MaxTokens = int64(k.cfg.MaxTokens)
			o.APIKey = k.cfg.AnthropicAPIKey
		})
	}
	return openai.NewModel(func(o *openai.Options) {
		o.Model = k.cfg.DefaultModel
		o.Temperature = k.cfg.Temperature
		o.MaxCompletionTokens = int64(k.cfg.MaxTokens)
		o.APIKey = k.cfg.APIKey
	})
}

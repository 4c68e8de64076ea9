package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/tool"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// Options are the embedded BaseAgent options (description, logger).
	Options

	// Instruction is the system prompt sent with every model call.
	// Defaults to a generic assistant prompt derived from the agent name.
	Instruction string

	// MaxIterations bounds the generate/tool-call loop. Zero means the
	// configured config.MaxIterations.
	MaxIterations int
}

// ModelAgent is a concrete Agent that integrates with a language model to
// process queries, calling registered tools when the model requests them.
//
// ModelAgent embeds BaseAgent for tool registration and bounded memory. Only
// tools implementing tool.Declared are advertised to the model; other
// registered tools are inert for model calls but still appear in Tools().
// Tool failures are reported back to the model as tool result messages, never
// propagated to the caller.
type ModelAgent struct {
	BaseAgent
	llm           model.Model
	instruction   string
	maxIterations int
}

// NewModelAgent creates a model-backed agent bound to cfg. Configuration
// validation failures propagate unchanged, exactly as with NewBaseAgent.
func NewModelAgent(cfg *config.Config, name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) (*ModelAgent, error) {
	opts := ModelAgentOptions{
		Instruction: fmt.Sprintf("You are %s, a helpful AI assistant.", name),
	}
	opts.Logger = logging.NopLogger{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}

	base, err := NewBaseAgent(cfg, name, func(o *Options) { *o = opts.Options })
	if err != nil {
		return nil, err
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = cfg.MaxIterations
	}

	return &ModelAgent{
		BaseAgent:     base,
		llm:           llm,
		instruction:   opts.Instruction,
		maxIterations: maxIterations,
	}, nil
}

// Execute runs the generate/tool-call loop for query. contextData entries are
// surfaced to the model as a context preamble on the user turn. The returned
// map contains "response", "model", "iterations" and "tools_used". Memory is
// not touched; callers record interactions themselves.
func (a *ModelAgent) Execute(ctx context.Context, query string, contextData map[string]any) (map[string]any, error) {
	cfg := a.Config()
	logger := a.Logger()

	messages := []model.Message{{Role: model.RoleUser, Content: a.userContent(query, contextData)}}
	declared := a.declaredTools()
	defs := toolDefinitions(declared)

	var toolsUsed []string

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		req := &model.Request{
			Instructions: a.instruction,
			Messages:     messages,
			Tools:        defs,
			Model:        cfg.DefaultModel,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
		}

		resp, err := a.llm.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("model generate failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return map[string]any{
				"response":   resp.Message.Content,
				"model":      a.llm.Info().Name,
				"iterations": iteration,
				"tools_used": toolsUsed,
			}, nil
		}

		for _, call := range resp.Message.ToolCalls {
			content := a.dispatchToolCall(declared, call)
			toolsUsed = append(toolsUsed, call.Name)
			messages = append(messages, model.Message{
				Role:       model.RoleTool,
				Content:    content,
				ToolCallID: call.ID,
			})
			logger.Debug("agent.tool_call", "agent", a.Name(), "tool", call.Name)
		}
	}

	// The model kept requesting tools past the iteration cap; return what we
	// have instead of failing the caller.
	return map[string]any{
		"response":   "",
		"model":      a.llm.Info().Name,
		"iterations": a.maxIterations,
		"tools_used": toolsUsed,
		"truncated":  true,
	}, nil
}

// dispatchToolCall resolves and invokes the requested tool, serializing the
// outcome (or failure) into a tool result string for the model.
func (a *ModelAgent) dispatchToolCall(declared map[string]tool.Declared, call model.ToolCall) string {
	t, ok := declared[call.Name]
	if !ok {
		return fmt.Sprintf(`{"error": "unknown tool %q"}`, call.Name)
	}

	args := map[string]any{}
	if len(call.Arguments) > 0 {
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return fmt.Sprintf(`{"error": "invalid tool arguments: %s"}`, err)
		}
	}

	result, err := t.Call(args)
	if err != nil {
		a.Logger().Warn("agent.tool_call.failed", "agent", a.Name(), "tool", call.Name, "error", err.Error())
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(raw)
}

// declaredTools indexes the registered Declared tools by name. Later
// registrations win on duplicate names.
func (a *ModelAgent) declaredTools() map[string]tool.Declared {
	declared := make(map[string]tool.Declared)
	for _, t := range a.Tools() {
		if isNilTool(t) {
			continue
		}
		if d, ok := t.(tool.Declared); ok {
			declared[d.Name()] = d
		}
	}
	return declared
}

// userContent renders the query, prefixed by a deterministic context preamble
// when contextData is present.
func (a *ModelAgent) userContent(query string, contextData map[string]any) string {
	if len(contextData) == 0 {
		return query
	}
	keys := make([]string, 0, len(contextData))
	for k := range contextData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	content := "Context:\n"
	for _, k := range keys {
		content += fmt.Sprintf("- %s: %v\n", k, contextData[k])
	}
	return content + "\n" + query
}

func toolDefinitions(declared map[string]tool.Declared) []model.ToolDefinition {
	if len(declared) == 0 {
		return nil
	}
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]model.ToolDefinition, 0, len(declared))
	for _, name := range names {
		d := declared[name]
		defs = append(defs, model.ToolDefinition{
			Name:        d.Name(),
			Description: d.Description(),
			Parameters:  d.Parameters(),
		})
	}
	return defs
}

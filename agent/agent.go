package agent

import (
	"context"
	"reflect"
	"sync"

	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/memory"
	"github.com/hupe1980/agentkit/tool"
)

// Agent is the contract every concrete agent satisfies. BaseAgent supplies
// everything except Execute; embedding it and implementing Execute is what
// makes a type an Agent. There is no runtime enforcement of the missing
// method, the type system handles it.
type Agent interface {
	// Name returns the human-readable name for this agent.
	Name() string

	// Description returns a detailed description of this agent's purpose.
	Description() string

	// Execute processes a query with optional context data and returns a
	// result map containing at least a "response" entry. Implementations
	// must not mutate the agent's memory; recording interactions is the
	// caller's decision.
	Execute(ctx context.Context, query string, contextData map[string]any) (map[string]any, error)
}

// Options customize BaseAgent construction beyond the required fields.
type Options struct {
	// Description of the agent's purpose. Defaults to empty.
	Description string

	// Logger used for diagnostics. Defaults to logging.NopLogger.
	Logger logging.Logger
}

// BaseAgent bundles the shared agent state: an ordered tool list and a
// capacity-bounded interaction log. Embed it in concrete agent
// implementations and supply an Execute method to satisfy the Agent
// interface.
//
// The mutable state lives behind pointers so a BaseAgent may be embedded by
// value; copies share one tool list and one memory log. Each sequence is
// guarded by its own mutex, making all exported methods goroutine-safe.
type BaseAgent struct {
	name        string
	description string
	cfg         *config.Config
	logger      logging.Logger
	toolbox     *toolbox
	memLog      *memory.Log
}

// toolbox is the mutex-guarded, append-only tool registry shared by all
// copies of one BaseAgent.
type toolbox struct {
	mu    sync.Mutex
	tools []tool.Tool
}

// NewBaseAgent constructs a BaseAgent bound to the given configuration. The
// configuration is validated immediately; a validation failure is returned
// unchanged and no agent state is created. The name may be empty.
func NewBaseAgent(cfg *config.Config, name string, optFns ...func(o *Options)) (BaseAgent, error) {
	if err := cfg.Validate(); err != nil {
		return BaseAgent{}, err
	}

	opts := Options{Logger: logging.NopLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}

	return BaseAgent{
		name:        name,
		description: opts.Description,
		cfg:         cfg,
		logger:      opts.Logger,
		toolbox:     &toolbox{},
		memLog:      memory.NewLog(cfg.MemorySize),
	}, nil
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// Config returns the configuration the agent was constructed with.
func (b *BaseAgent) Config() *config.Config { return b.cfg }

// Logger returns the agent's logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// RegisterTool appends t to the agent's toolkit. Registration is
// unconditional and never fails: any value is accepted, including nil, and
// duplicates are kept. Malformed tools surface later as gaps in ToolNames,
// not as registration errors.
func (b *BaseAgent) RegisterTool(t tool.Tool) {
	b.toolbox.mu.Lock()
	defer b.toolbox.mu.Unlock()

	b.toolbox.tools = append(b.toolbox.tools, t)
	b.logger.Debug("agent.tool.registered", "agent", b.name, "count", len(b.toolbox.tools))
}

// Tools returns a copy of the registered tools in registration order.
func (b *BaseAgent) Tools() []tool.Tool {
	b.toolbox.mu.Lock()
	defer b.toolbox.mu.Unlock()

	out := make([]tool.Tool, len(b.toolbox.tools))
	copy(out, b.toolbox.tools)
	return out
}

// ToolNames returns the names of all registered tools that implement
// tool.Named, in registration order with duplicates kept. Nil and unnamed
// tools are silently skipped.
func (b *BaseAgent) ToolNames() []string {
	b.toolbox.mu.Lock()
	defer b.toolbox.mu.Unlock()

	names := make([]string, 0, len(b.toolbox.tools))
	for _, t := range b.toolbox.tools {
		if isNilTool(t) {
			continue
		}
		if named, ok := t.(tool.Named); ok {
			names = append(names, named.Name())
		}
	}
	return names
}

// isNilTool reports whether t has no usable dynamic value. A typed nil
// pointer stored in the interface is not == nil but would still crash any
// method call on it.
func isNilTool(t tool.Tool) bool {
	if t == nil {
		return true
	}
	switch v := reflect.ValueOf(t); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// AddToMemory appends record to the agent's interaction log and enforces the
// capacity bound: when the log exceeds the configured memory size, only the
// most recent records survive, in original order. Any value is accepted,
// including nil. AddToMemory never fails.
func (b *BaseAgent) AddToMemory(record any) {
	before := b.memLog.Len()
	b.memLog.Add(record)
	if b.memLog.Len() <= before {
		b.logger.Debug("agent.memory.trimmed", "agent", b.name, "capacity", b.memLog.Capacity())
	}
}

// Memory returns a copy of the current interaction records in chronological order.
func (b *BaseAgent) Memory() []any { return b.memLog.All() }

// MemoryCapacity returns the configured bound on the interaction log.
func (b *BaseAgent) MemoryCapacity() int { return b.memLog.Capacity() }

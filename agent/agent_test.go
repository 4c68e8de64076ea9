package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/memory"
	"github.com/hupe1980/agentkit/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.APIKey = "sk-test"
	return cfg
}

// echoAgent is a minimal concrete Agent for exercising the base scaffold.
type echoAgent struct {
	BaseAgent
}

func newEchoAgent(t *testing.T, cfg *config.Config, name string, optFns ...func(o *Options)) *echoAgent {
	t.Helper()
	base, err := NewBaseAgent(cfg, name, optFns...)
	require.NoError(t, err)
	return &echoAgent{BaseAgent: base}
}

func (a *echoAgent) Execute(_ context.Context, query string, contextData map[string]any) (map[string]any, error) {
	return map[string]any{
		"response":   "Processed: " + query,
		"context":    contextData,
		"tools_used": a.ToolNames(),
	}, nil
}

// unnamedTool is invocable but does not implement tool.Named.
type unnamedTool struct{}

func (unnamedTool) Call(map[string]any) (any, error) { return "ok", nil }

// namedTool implements tool.Named with a fixed identifier.
type namedTool struct{ name string }

func (t namedTool) Name() string                     { return t.name }
func (t namedTool) Call(map[string]any) (any, error) { return "ok", nil }

// Interface satisfaction checks.
var (
	_ Agent      = (*echoAgent)(nil)
	_ Agent      = (*ModelAgent)(nil)
	_ tool.Tool  = unnamedTool{}
	_ tool.Named = namedTool{}
)

// -------------------- Construction --------------------

func TestNewBaseAgent(t *testing.T) {
	base, err := NewBaseAgent(testConfig(), "TestAgent", func(o *Options) {
		o.Description = "Test description"
	})

	require.NoError(t, err)
	assert.Equal(t, "TestAgent", base.Name())
	assert.Equal(t, "Test description", base.Description())
	assert.Empty(t, base.Tools())
	assert.Empty(t, base.Memory())
	assert.Equal(t, 1000, base.MemoryCapacity())
}

func TestNewBaseAgent_DefaultsToEmptyDescription(t *testing.T) {
	base, err := NewBaseAgent(testConfig(), "MinimalAgent")

	require.NoError(t, err)
	assert.Equal(t, "MinimalAgent", base.Name())
	assert.Empty(t, base.Description())
}

func TestNewBaseAgent_InvalidConfigPropagates(t *testing.T) {
	cfg := config.DefaultConfig() // missing API key

	_, err := NewBaseAgent(cfg, "TestAgent")

	require.Error(t, err)
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "api_key", cfgErr.Setting)
}

func TestNewBaseAgent_ParameterCombinations(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"Agent1", "Description1"},
		{"Agent2", ""},
		{"", "NoName"}, // empty name edge case
	}

	for _, tt := range tests {
		base, err := NewBaseAgent(testConfig(), tt.name, func(o *Options) {
			o.Description = tt.description
		})
		require.NoError(t, err)
		assert.Equal(t, tt.name, base.Name())
		assert.Equal(t, tt.description, base.Description())
	}
}

// -------------------- Tool Management --------------------

func TestRegisterTool(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")
	calc := tool.NewCalculator()

	a.RegisterTool(calc)

	tools := a.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, tool.Tool(calc), tools[0])
}

func TestRegisterTool_DuplicatesKept(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	a.RegisterTool(tool.NewCalculator())
	a.RegisterTool(tool.NewCalculator())

	assert.Len(t, a.Tools(), 2)
	assert.Equal(t, []string{"calculator", "calculator"}, a.ToolNames())
}

func TestRegisterTool_NilAccepted(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	a.RegisterTool(nil)

	require.Len(t, a.Tools(), 1)
	assert.Nil(t, a.Tools()[0])
	// Enumeration degrades gracefully, it does not fail.
	assert.Empty(t, a.ToolNames())
}

func TestToolNames_SkipsTypedNilTools(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	var calc *tool.Calculator // nil pointer behind a non-nil interface
	a.RegisterTool(calc)
	a.RegisterTool(tool.NewCalculator())

	assert.Len(t, a.Tools(), 2)
	assert.Equal(t, []string{"calculator"}, a.ToolNames())
}

func TestToolNames_SkipsUnnamedTools(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	a.RegisterTool(tool.NewCalculator())
	a.RegisterTool(unnamedTool{})

	assert.Len(t, a.Tools(), 2)
	assert.Equal(t, []string{"calculator"}, a.ToolNames())
}

func TestToolNames_PreservesRegistrationOrder(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	a.RegisterTool(namedTool{name: "web_search"})
	a.RegisterTool(unnamedTool{})
	a.RegisterTool(nil)
	a.RegisterTool(tool.NewCalculator())

	assert.Equal(t, []string{"web_search", "calculator"}, a.ToolNames())
}

func TestToolNames_EmptyAgent(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	assert.Empty(t, a.ToolNames())
	assert.Empty(t, a.Memory())
}

// -------------------- Memory Management --------------------

func TestAddToMemory(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")
	interaction := map[string]any{"query": "test", "response": "result"}

	a.AddToMemory(interaction)

	records := a.Memory()
	require.Len(t, records, 1)
	assert.Equal(t, interaction, records[0])
}

func TestAddToMemory_EnforcesCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.MemorySize = 3
	a := newEchoAgent(t, cfg, "TestAgent")

	for i := 0; i < 5; i++ {
		a.AddToMemory(map[string]any{"query": fmt.Sprintf("test%d", i)})
	}

	records := a.Memory()
	require.Len(t, records, 3)
	assert.Equal(t, "test2", records[0].(map[string]any)["query"])
	assert.Equal(t, "test3", records[1].(map[string]any)["query"])
	assert.Equal(t, "test4", records[2].(map[string]any)["query"])
}

func TestAddToMemory_ExactCapacityNotTrimmed(t *testing.T) {
	cfg := testConfig()
	cfg.MemorySize = 10
	a := newEchoAgent(t, cfg, "TestAgent")

	for i := 0; i < 10; i++ {
		a.AddToMemory(map[string]any{"query": fmt.Sprintf("test%d", i)})
	}
	assert.Len(t, a.Memory(), 10)

	a.AddToMemory(map[string]any{"query": "test10"})
	records := a.Memory()
	assert.Len(t, records, 10)
	assert.Equal(t, "test1", records[0].(map[string]any)["query"])
}

func TestAddToMemory_NilRecord(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	a.AddToMemory(nil)

	records := a.Memory()
	require.Len(t, records, 1)
	assert.Nil(t, records[0])
}

func TestAddToMemory_ComplexRecord(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")
	record := map[string]any{
		"query":    "complex query",
		"response": "detailed response",
		"metadata": map[string]any{
			"tools_used":     []string{"calculator", "web_search"},
			"execution_time": 1.5,
		},
		"context": map[string]any{"user_id": "123", "session_id": "abc"},
	}

	a.AddToMemory(record)

	stored := a.Memory()[0].(map[string]any)
	assert.Equal(t, record, stored)
	assert.Equal(t, []string{"calculator", "web_search"}, stored["metadata"].(map[string]any)["tools_used"])
}

// -------------------- Execute --------------------

func TestExecute(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")

	result, err := a.Execute(context.Background(), "test query", nil)

	require.NoError(t, err)
	assert.Equal(t, "Processed: test query", result["response"])
	assert.Nil(t, result["context"])
	assert.Empty(t, result["tools_used"])
}

func TestExecute_WithContext(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")
	contextData := map[string]any{"user": "testuser", "session": "123"}

	result, err := a.Execute(context.Background(), "test query", contextData)

	require.NoError(t, err)
	assert.Equal(t, contextData, result["context"])
}

func TestExecute_ReflectsRegisteredTools(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "TestAgent")
	a.RegisterTool(tool.NewCalculator())

	result, err := a.Execute(context.Background(), "test query", nil)

	require.NoError(t, err)
	assert.Contains(t, result["tools_used"], "calculator")
}

// -------------------- Integration --------------------

func TestAgentWorkflow(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "WorkflowAgent", func(o *Options) {
		o.Description = "Integration test agent"
	})
	a.RegisterTool(tool.NewCalculator())

	result, err := a.Execute(context.Background(), "Calculate 2+2", map[string]any{"session": "test"})
	require.NoError(t, err)

	a.AddToMemory(memory.NewRecord("Calculate 2+2", result))

	assert.Len(t, a.Tools(), 1)
	assert.Len(t, a.Memory(), 1)
	assert.Equal(t, []string{"calculator"}, a.ToolNames())

	record := a.Memory()[0].(map[string]any)
	assert.Equal(t, "Calculate 2+2", record["query"])
	assert.NotEmpty(t, record["id"])
}

func TestAgentWorkflow_MultipleToolsAndInteractions(t *testing.T) {
	a := newEchoAgent(t, testConfig(), "MultiToolAgent")
	a.RegisterTool(tool.NewCalculator())
	a.RegisterTool(namedTool{name: "web_search"})

	queries := []string{"What is 2+2?", "Search for Go tutorials", "Calculate 10*5"}
	for i, query := range queries {
		result, err := a.Execute(context.Background(), query, map[string]any{"turn": i})
		require.NoError(t, err)
		a.AddToMemory(map[string]any{"query": query, "result": result})
	}

	assert.Len(t, a.Tools(), 2)
	assert.Len(t, a.Memory(), 3)
	assert.ElementsMatch(t, []string{"calculator", "web_search"}, a.ToolNames())
}

// Package tool implements the pluggable capability subsystem that lets agents
// invoke structured operations (computations, APIs, side effects) with
// consistent error handling. Capabilities are layered as interfaces: every
// tool is invocable, naming and schema declaration are opt-in.
package tool

import "fmt"

// Tool is the minimal capability contract: anything invocable with a keyword
// argument bundle. Agents accept any Tool (or nil) at registration time and
// impose no further shape requirements.
type Tool interface {
	// Call executes the tool with structured arguments and returns a
	// structured result. Implementations should catch their own operational
	// failures and either report them in the result or return a *ToolError.
	Call(args map[string]any) (any, error)
}

// Named is implemented by tools that expose a stable identifier. Tools that
// do not implement Named are still registrable but are skipped when an agent
// enumerates tool names.
type Named interface {
	Tool

	// Name returns the unique identifier for this tool.
	// Names should be descriptive and follow function naming conventions (snake_case recommended).
	Name() string
}

// Declared extends Named with the metadata required for model function
// calling: a human-readable description and a JSON schema for arguments.
type Declared interface {
	Named

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

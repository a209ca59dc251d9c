package comptool

import (
	"context"
	"time"
)

// ToolOutputName is the sentinel output that emits the component's own tool
// set. It is always excluded from tool generation so a component cannot
// expose a tool that generates tools.
const ToolOutputName = "component_as_tool"

// Tool is the contract for an LLM-callable instrument produced from a
// component output. It is provider-agnostic (no knowledge of OpenAI,
// Anthropic, etc.).
type Tool interface {
	Name() string
	Description() string
	// Parameters returns a valid JSON Schema as map (compatible with LLM tool definitions).
	Parameters() map[string]any
	// Invoke validates args against the tool's schema, writes them into the
	// owning component's argument state, and runs the bound method to
	// completion. The call is synchronous even when the underlying method is
	// asynchronous; see Scheduler for how background work is bridged.
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

// ToolMetadata is implemented by tools that carry optional per-tool settings.
// Registry uses Timeout() to override its default execution timeout when set.
type ToolMetadata interface {
	Timeout() time.Duration
}

// ToolCall is a single execution request (as produced by the LLM).
type ToolCall struct {
	ID       string
	ToolName string
	Args     map[string]any
}

// ToolResult is the outcome of one Registry execution. Error is nil on
// success; Value holds whatever the bound method returned.
type ToolResult struct {
	CallID   string
	ToolName string
	Value    any
	Error    error
	Duration time.Duration
}

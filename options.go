package comptool

import (
	"context"
	"log/slog"
	"time"
)

// toolkitOptions hold optional Toolkit settings.
type toolkitOptions struct {
	logger   *slog.Logger
	resolver SchemaResolver
	timeout  time.Duration
}

func defaultToolkitOptions() toolkitOptions {
	return toolkitOptions{
		logger:   slog.Default(),
		resolver: JSONSchemaResolver{},
	}
}

// ToolkitOption configures a Toolkit (e.g. WithLogger, WithSchemaResolver).
type ToolkitOption func(*toolkitOptions)

// WithLogger sets the logger used for metadata warnings and adapter
// diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ToolkitOption {
	return func(o *toolkitOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSchemaResolver replaces the default JSONSchemaResolver.
func WithSchemaResolver(r SchemaResolver) ToolkitOption {
	return func(o *toolkitOptions) {
		if r != nil {
			o.resolver = r
		}
	}
}

// WithToolTimeout sets a per-tool timeout carried as ToolMetadata; the
// Registry uses it to override its default. The invocation adapter itself
// never enforces a timeout on the method body.
func WithToolTimeout(d time.Duration) ToolkitOption {
	return func(o *toolkitOptions) {
		o.timeout = d
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	timeout        time.Duration
	maxConcurrency int
	recoverPanics  bool
	onBefore       func(context.Context, ToolCall)
	onAfter        func(context.Context, ToolCall, ToolResult)
}

// WithDefaultTimeout sets the default execution timeout for tools.
func WithDefaultTimeout(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.timeout = d
	}
}

// WithMaxConcurrency limits concurrent tool executions (semaphore).
// Pass 0 or negative to disable the semaphore (unlimited concurrency).
func WithMaxConcurrency(n int) RegistryOption {
	return func(o *registryOptions) {
		o.maxConcurrency = n
	}
}

// WithRecoverPanics enables panic recovery in Execute (returns SystemError).
func WithRecoverPanics(enable bool) RegistryOption {
	return func(o *registryOptions) {
		o.recoverPanics = enable
	}
}

// WithOnBeforeExecute sets a hook called before each tool execution.
func WithOnBeforeExecute(fn func(context.Context, ToolCall)) RegistryOption {
	return func(o *registryOptions) {
		o.onBefore = fn
	}
}

// WithOnAfterExecute sets a hook called after each tool execution with the
// final ToolResult (success or error).
func WithOnAfterExecute(fn func(context.Context, ToolCall, ToolResult)) RegistryOption {
	return func(o *registryOptions) {
		o.onAfter = fn
	}
}

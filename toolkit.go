package comptool

import (
	"context"
	"fmt"
	"time"
)

// Toolkit assembles a component's outputs into the tools an agent
// framework can call. It holds no registry of previously produced tools;
// every GetTools call builds fresh descriptors that reference (not copy)
// the live component.
type Toolkit struct {
	component *Component
	opts      toolkitOptions
}

// NewToolkit creates a Toolkit for the given component.
func NewToolkit(c *Component, opts ...ToolkitOption) *Toolkit {
	o := defaultToolkitOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Toolkit{component: c, opts: o}
}

// GetTools produces one Tool per component output, in declaration order.
//
// The sentinel ToolOutputName output is skipped. Every other output must
// have a bound method; the argument schema comes from the output's
// required-input subset, or from the component's whole input set when the
// output declares none (with a logged warning from the description pass).
// Assembly is all-or-nothing: the first misconfigured output aborts with
// a ConfigError and no tools are returned.
//
// Two outputs may normalize to the same tool name; both are returned and
// the collision is logged, since renaming here would silently diverge
// from the upstream declaration.
func (tk *Toolkit) GetTools() ([]Tool, error) {
	c := tk.component
	tools := make([]Tool, 0, len(c.outputs))
	seen := make(map[string]string, len(c.outputs))
	for _, out := range c.outputs {
		if out.Name == ToolOutputName {
			continue
		}
		if out.Method == "" {
			return nil, &ConfigError{
				Component: c.name,
				Output:    out.Name,
				Reason:    "does not have a method defined",
				Err:       ErrMissingMethod,
			}
		}
		inputs, err := tk.selectInputs(out)
		if err != nil {
			return nil, err
		}
		schema, err := tk.opts.resolver.Resolve(inputs)
		if err != nil {
			return nil, fmt.Errorf("resolve schema for output %q: %w", out.Name, err)
		}
		inv, err := buildInvoker(c, out, tk.opts.logger)
		if err != nil {
			return nil, err
		}
		name := FormatToolName(c.name + "." + out.Method)
		if prev, dup := seen[name]; dup {
			tk.opts.logger.Warn("tool name collision",
				"component", c.name, "name", name, "outputs", []string{prev, out.Name})
		}
		seen[name] = out.Name
		tools = append(tools, &componentTool{
			name:        name,
			description: buildDescription(c, out, tk.opts.logger),
			schema:      schema,
			invoke:      inv,
			timeout:     tk.opts.timeout,
		})
	}
	return tools, nil
}

// selectInputs picks the inputs that feed the schema resolver: the
// output's declared required subset, or all component inputs when none
// are declared. A required name missing from the component's declarations
// is a configuration error, not a skip.
func (tk *Toolkit) selectInputs(out Output) ([]Input, error) {
	if len(out.RequiredInputs) == 0 {
		return tk.component.Inputs(), nil
	}
	inputs := make([]Input, 0, len(out.RequiredInputs))
	for _, name := range out.RequiredInputs {
		in, ok := tk.component.Input(name)
		if !ok {
			return nil, &ConfigError{
				Component: tk.component.name,
				Output:    out.Name,
				Reason:    fmt.Sprintf("required input %q is not declared", name),
				Err:       ErrUnknownInput,
			}
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// componentTool is the Tool produced by Toolkit.GetTools. Immutable once
// built; it holds a reference to the originating component through its
// invoker so invocation reads and writes the live state.
type componentTool struct {
	name        string
	description string
	schema      ArgsSchema
	invoke      invoker
	timeout     time.Duration
}

func (t *componentTool) Name() string        { return t.name }
func (t *componentTool) Description() string { return t.description }

func (t *componentTool) Parameters() map[string]any { return t.schema.Parameters() }

// Invoke validates args against the tool's schema, then runs the wrapped
// method through the invocation adapter. Method errors come back verbatim.
func (t *componentTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	if err := t.schema.Validate(args); err != nil {
		return nil, err
	}
	return t.invoke(ctx, args)
}

func (t *componentTool) Timeout() time.Duration { return t.timeout }

var (
	_ Tool         = (*componentTool)(nil)
	_ ToolMetadata = (*componentTool)(nil)
)

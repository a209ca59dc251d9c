package comptool

import (
	"context"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Input is one declared component input. FieldType uses the component
// system's vocabulary ("str", "int", "float", "bool", "dict", "list");
// InputTypes is an optional union of accepted type names used for
// human-readable rendering and takes precedence over FieldType there.
type Input struct {
	Name       string
	FieldType  string
	InputTypes []string
	Info       string
	Required   bool
}

// Output is one declared unit of computation: a name, the name of the
// bound method in the component's method table, and the subset of the
// component's inputs the computation depends on. An empty RequiredInputs
// means the output did not declare its dependencies; tool generation then
// falls back to the component's whole input set.
type Output struct {
	Name           string
	Method         string
	RequiredInputs []string
}

// SyncMethod is a bound output method that runs to completion inline.
type SyncMethod func() (any, error)

// AsyncMethod is a bound output method that may suspend and spawn
// background tasks on the Scheduler carried by ctx (see SchedulerFrom).
type AsyncMethod func(ctx context.Context) (any, error)

// Component is the metadata and live execution state of one component, as
// defined by the external component system. Inputs keep declaration order;
// outputs keep declaration order; methods are bound by name via Bind.
//
// The argument state written by Set is a single shared mutable resource
// with no per-call isolation. Argument application and method execution
// are one atomic logical step within a single Invoke, but nothing is
// guaranteed across concurrent invocations on the same instance: callers
// must serialize them or use distinct instances.
type Component struct {
	name        string
	description string
	inputs      *orderedmap.OrderedMap[string, Input]
	outputs     []Output
	methods     map[string]any
	state       map[string]any
}

// ComponentOption configures a Component at construction.
type ComponentOption func(*Component)

// WithInputs appends input declarations in the given order.
func WithInputs(inputs ...Input) ComponentOption {
	return func(c *Component) {
		for _, in := range inputs {
			c.inputs.Set(in.Name, in)
		}
	}
}

// WithOutput appends one output declaration.
func WithOutput(out Output) ComponentOption {
	return func(c *Component) {
		c.outputs = append(c.outputs, out)
	}
}

// WithOutputs appends output declarations in the given order.
func WithOutputs(outputs ...Output) ComponentOption {
	return func(c *Component) {
		c.outputs = append(c.outputs, outputs...)
	}
}

// NewComponent creates a Component with the given display name and
// human description. Methods are usually bound after construction (see
// Bind) because they close over the component to read its arguments.
func NewComponent(name, description string, opts ...ComponentOption) *Component {
	c := &Component{
		name:        name,
		description: description,
		inputs:      orderedmap.New[string, Input](),
		methods:     make(map[string]any),
		state:       make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the component's display name (not yet tool-name legal).
func (c *Component) Name() string { return c.name }

// Description returns the component's human description.
func (c *Component) Description() string { return c.description }

// Input returns the declared input with the given name.
func (c *Component) Input(name string) (Input, bool) {
	return c.inputs.Get(name)
}

// Inputs returns all declared inputs in declaration order.
func (c *Component) Inputs() []Input {
	out := make([]Input, 0, c.inputs.Len())
	for pair := c.inputs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Outputs returns the declared outputs in declaration order.
func (c *Component) Outputs() []Output {
	return append([]Output(nil), c.outputs...)
}

// Bind registers a method under the given name. fn must be a SyncMethod
// or an AsyncMethod (or a function assignable to one of them); the shape
// is checked when a toolkit wraps the method, not here.
func (c *Component) Bind(name string, fn any) {
	c.methods[name] = fn
}

// method looks up a bound method by name.
func (c *Component) method(name string) (any, bool) {
	fn, ok := c.methods[name]
	return fn, ok
}

// Set writes argument values into the component's live state. Every key
// must name a declared input; an undeclared key is a ValidationError and
// no value is written. Not safe for concurrent use.
func (c *Component) Set(args map[string]any) error {
	for name := range args {
		if _, ok := c.inputs.Get(name); !ok {
			return &ValidationError{
				Reason: fmt.Sprintf("unknown input %q", name),
				Err:    ErrUnknownInput,
			}
		}
	}
	for name, v := range args {
		c.state[name] = v
	}
	return nil
}

// Arg returns the most recently set value for the named input, or nil if
// it has never been set. Bound methods read their arguments through Arg.
func (c *Component) Arg(name string) any {
	return c.state[name]
}

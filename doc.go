// Package comptool adapts a component's output-producing methods into
// named, schema-validated tools for LLM agents.
//
// # Overview
//
// A Component declares inputs (name, field type, accepted type union) and
// outputs (name, bound method, required inputs). Toolkit walks the outputs
// and produces one Tool per output: a protocol-legal name, a signature
// description, an argument schema derived from the output's required
// inputs, and a synchronous Invoke that behaves the same whether the bound
// method is synchronous or asynchronous.
//
// Pipeline: Component metadata → Toolkit.GetTools → []Tool → Registry →
// Execute (validate, set arguments, run method, collect result).
//
// # Key concepts
//
//   - Uniform invocation: Invoke always writes arguments into the
//     component's live state first, then drives the method to completion.
//     Asynchronous methods run on an ambient Scheduler when one is present
//     in the context, or on a transient one scoped to the call. Either
//     way, background tasks spawned during the call are cancelled before
//     Invoke returns.
//   - Metadata-driven schemas: the argument schema comes from the
//     component's Input declarations, not from Go structs. InputsOf
//     bridges the two for authors who prefer struct tags.
//   - No partial toolkits: one misconfigured output fails the whole
//     GetTools call.
//
// See Component, Toolkit, Tool, and Scheduler for the core types.
//
// # Example
//
//	c := comptool.NewComponent("calc", "Adds two numbers",
//	    comptool.WithInputs(
//	        comptool.Input{Name: "a", FieldType: "int", Required: true},
//	        comptool.Input{Name: "b", FieldType: "int", Required: true},
//	    ),
//	    comptool.WithOutput(comptool.Output{Name: "sum", Method: "add", RequiredInputs: []string{"a", "b"}}),
//	)
//	c.Bind("add", func() (any, error) {
//	    return c.Arg("a").(int) + c.Arg("b").(int), nil
//	})
//	tools, err := comptool.NewToolkit(c).GetTools()
//	if err != nil { ... }
//	res, err := tools[0].Invoke(ctx, map[string]any{"a": 1, "b": 2})
package comptool

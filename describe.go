package comptool

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// inputTypeLabel renders the human-readable type of an input: a single
// accepted type as-is, several joined by " | ", otherwise the declared
// field type.
func inputTypeLabel(in Input) string {
	switch len(in.InputTypes) {
	case 0:
		return in.FieldType
	case 1:
		return in.InputTypes[0]
	default:
		return strings.Join(in.InputTypes, " | ")
	}
}

// buildDescription derives the tool description for one output:
// "<method>(<arg: type, ...>) - <component description>". The rendered
// argument list is sorted so the output is deterministic regardless of
// declaration order. An output without required inputs yields an empty
// argument list and a warning, since that usually signals incomplete
// component authoring upstream.
func buildDescription(c *Component, out Output, logger *slog.Logger) string {
	if len(out.RequiredInputs) == 0 {
		logger.Warn("output does not have required inputs defined",
			"component", c.name, "output", out.Name)
		return fmt.Sprintf("%s() - %s", out.Method, c.description)
	}
	args := make([]string, 0, len(out.RequiredInputs))
	for _, name := range out.RequiredInputs {
		in, ok := c.Input(name)
		if !ok {
			continue // assembly rejects unknown names before we get here
		}
		args = append(args, name+": "+inputTypeLabel(in))
	}
	slices.Sort(args)
	return fmt.Sprintf("%s(%s) - %s", out.Method, strings.Join(args, ", "), c.description)
}

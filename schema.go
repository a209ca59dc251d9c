package comptool

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// ArgsSchema is an opaque validatable argument structure attached to a
// Tool: exported to the LLM via Parameters and enforced at the invocation
// boundary via Validate.
type ArgsSchema interface {
	// Parameters returns a shallow copy of the JSON Schema (top-level keys only).
	// Nested maps are shared; callers must not mutate them.
	Parameters() map[string]any
	// Validate checks caller-supplied arguments before invocation and
	// returns a ValidationError on rejection.
	Validate(args map[string]any) error
}

// SchemaResolver converts an ordered list of input declarations into an
// argument schema. The toolkit only selects which inputs feed the
// resolver (the output's required subset, or the whole input set); the
// schema semantics live entirely in the resolver.
type SchemaResolver interface {
	Resolve(inputs []Input) (ArgsSchema, error)
}

// fieldTypeJSON maps the component system's field-type vocabulary to JSON
// Schema types. Unknown field types get no type constraint.
var fieldTypeJSON = map[string]string{
	"str":   "string",
	"int":   "integer",
	"float": "number",
	"bool":  "boolean",
	"dict":  "object",
	"list":  "array",
}

// JSONSchemaResolver is the default SchemaResolver: it builds an object
// schema from the input declarations and compiles it once so Validate is
// cheap per call.
type JSONSchemaResolver struct{}

// Resolve implements SchemaResolver.
func (JSONSchemaResolver) Resolve(inputs []Input) (ArgsSchema, error) {
	props := make(map[string]any, len(inputs))
	var required []string
	for _, in := range inputs {
		prop := map[string]any{}
		if jt, ok := fieldTypeJSON[in.FieldType]; ok {
			prop["type"] = jt
		}
		if in.Info != "" {
			prop["description"] = in.Info
		}
		props[in.Name] = prop
		if in.Required {
			required = append(required, in.Name)
		}
	}
	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		slices.Sort(required)
		req := make([]any, len(required))
		for i, name := range required {
			req[i] = name
		}
		doc["required"] = req
	}
	resolved, err := compileRawSchema(doc)
	if err != nil {
		return nil, err
	}
	return &inputSchema{doc: doc, resolved: resolved}, nil
}

// inputSchema is the ArgsSchema produced by JSONSchemaResolver.
type inputSchema struct {
	doc      map[string]any
	resolved *jsonschema.Resolved
}

func (s *inputSchema) Parameters() map[string]any { return maps.Clone(s.doc) }

func (s *inputSchema) Validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	if err := s.resolved.Validate(args); err != nil {
		return &ValidationError{Reason: err.Error(), Err: ErrValidation}
	}
	return nil
}

// compileRawSchema compiles a raw JSON Schema map into a resolved
// validator. The map is not mutated.
func compileRawSchema(doc map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}

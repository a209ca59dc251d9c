package comptool

import (
	"github.com/invopop/jsonschema"
)

// jsonFieldTypes maps JSON Schema types back to the component system's
// field-type vocabulary (the inverse of fieldTypeJSON).
var jsonFieldTypes = map[string]string{
	"string":  "str",
	"integer": "int",
	"number":  "float",
	"boolean": "bool",
	"object":  "dict",
	"array":   "list",
}

// InputsOf derives Input declarations from T's struct fields via JSON
// Schema reflection, for component authors who prefer struct tags over
// hand-written metadata. Field order is preserved; json tags name the
// inputs; fields without omitempty are required; jsonschema_description
// tags become Info.
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema_description:"Search query."`
//	    Limit int    `json:"limit,omitempty"`
//	}
//	c := comptool.NewComponent("search", "Searches the index",
//	    comptool.WithInputs(comptool.InputsOf[SearchArgs]()...))
func InputsOf[T any]() []Input {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	var v T
	schema := r.Reflect(&v)
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	if schema.Properties == nil {
		return nil
	}
	inputs := make([]Input, 0, schema.Properties.Len())
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value
		ft, ok := jsonFieldTypes[prop.Type]
		if !ok {
			ft = prop.Type
		}
		inputs = append(inputs, Input{
			Name:      pair.Key,
			FieldType: ft,
			Info:      prop.Description,
			Required:  required[pair.Key],
		})
	}
	return inputs
}

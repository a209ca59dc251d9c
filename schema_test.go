package comptool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveInputs(t *testing.T, inputs ...Input) ArgsSchema {
	t.Helper()
	schema, err := JSONSchemaResolver{}.Resolve(inputs)
	require.NoError(t, err)
	require.NotNil(t, schema)
	return schema
}

func TestJSONSchemaResolver_Parameters(t *testing.T) {
	schema := resolveInputs(t,
		Input{Name: "query", FieldType: "str", Info: "Search query.", Required: true},
		Input{Name: "limit", FieldType: "int"},
	)
	params := schema.Parameters()
	assert.Equal(t, "object", params["type"])
	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	query, ok := props["query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search query.", query["description"])
	limit, ok := props["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", limit["type"])
	assert.Equal(t, []any{"query"}, params["required"])
}

func TestJSONSchemaResolver_Validate(t *testing.T) {
	schema := resolveInputs(t,
		Input{Name: "x", FieldType: "int", Required: true},
	)
	require.NoError(t, schema.Validate(map[string]any{"x": 1}))

	err := schema.Validate(map[string]any{"x": "not a number"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrValidation)

	err = schema.Validate(map[string]any{})
	require.Error(t, err, "missing required input")
	assert.True(t, IsValidationError(err))

	require.Error(t, schema.Validate(nil), "nil args still miss required input")
}

func TestJSONSchemaResolver_UnknownFieldType(t *testing.T) {
	// Unknown field types get no type constraint: anything validates.
	schema := resolveInputs(t, Input{Name: "x", FieldType: "Message"})
	assert.NoError(t, schema.Validate(map[string]any{"x": "text"}))
	assert.NoError(t, schema.Validate(map[string]any{"x": 42}))
	assert.NoError(t, schema.Validate(map[string]any{}))
}

func TestJSONSchemaResolver_EmptyInputs(t *testing.T) {
	schema := resolveInputs(t)
	assert.NoError(t, schema.Validate(map[string]any{}))
	params := schema.Parameters()
	assert.Equal(t, "object", params["type"])
	_, hasRequired := params["required"]
	assert.False(t, hasRequired)
}

func TestInputSchema_Parameters_ReturnsCopy(t *testing.T) {
	schema := resolveInputs(t, Input{Name: "x", FieldType: "int"})
	params := schema.Parameters()
	params["mutated"] = true
	params2 := schema.Parameters()
	_, ok := params2["mutated"]
	assert.False(t, ok)
}

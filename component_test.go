package comptool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_InputsKeepDeclarationOrder(t *testing.T) {
	c := NewComponent("c", "d",
		WithInputs(
			Input{Name: "z", FieldType: "str"},
			Input{Name: "a", FieldType: "int"},
			Input{Name: "m", FieldType: "bool"},
		),
	)
	inputs := c.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, "z", inputs[0].Name)
	assert.Equal(t, "a", inputs[1].Name)
	assert.Equal(t, "m", inputs[2].Name)
}

func TestComponent_InputLookup(t *testing.T) {
	c := NewComponent("c", "d",
		WithInputs(Input{Name: "x", FieldType: "int", Info: "the x"}),
	)
	in, ok := c.Input("x")
	require.True(t, ok)
	assert.Equal(t, "the x", in.Info)
	_, ok = c.Input("y")
	assert.False(t, ok)
}

func TestComponent_SetAndArg(t *testing.T) {
	c := NewComponent("c", "d",
		WithInputs(Input{Name: "x", FieldType: "int"}),
	)
	assert.Nil(t, c.Arg("x"), "unset argument reads as nil")
	require.NoError(t, c.Set(map[string]any{"x": 7}))
	assert.Equal(t, 7, c.Arg("x"))
	require.NoError(t, c.Set(map[string]any{"x": 8}))
	assert.Equal(t, 8, c.Arg("x"), "Set overwrites the live state")
}

func TestComponent_Set_UndeclaredInput(t *testing.T) {
	c := NewComponent("c", "d",
		WithInputs(Input{Name: "x", FieldType: "int"}),
	)
	err := c.Set(map[string]any{"x": 1, "ghost": 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownInput)
	assert.Nil(t, c.Arg("x"), "nothing written when any key is undeclared")
}

func TestComponent_OutputsReturnsCopy(t *testing.T) {
	c := NewComponent("c", "d",
		WithOutput(Output{Name: "o", Method: "run"}),
	)
	outs := c.Outputs()
	outs[0].Name = "mutated"
	assert.Equal(t, "o", c.Outputs()[0].Name)
}

func TestComponent_InputRedeclarationReplaces(t *testing.T) {
	c := NewComponent("c", "d",
		WithInputs(
			Input{Name: "x", FieldType: "int"},
			Input{Name: "x", FieldType: "str"},
		),
	)
	require.Equal(t, 1, len(c.Inputs()))
	in, _ := c.Input("x")
	assert.Equal(t, "str", in.FieldType)
}

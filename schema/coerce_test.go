package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInputScalarAndNonNull(t *testing.T) {
	reg := NewRegistry()

	v, err := CoerceInput(reg, &NonNull{Of: String}, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	_, err = CoerceInput(reg, &NonNull{Of: String}, nil)
	assert.Error(t, err, "a null value must be rejected for a Non-Null type")
}

func TestCoerceInputListWrapsBareValue(t *testing.T) {
	reg := NewRegistry()

	v, err := CoerceInput(reg, &List{Of: Int}, float64(3))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{3}, v, "a bare value coerced against a List type becomes a one-element list")

	v, err = CoerceInput(reg, &List{Of: Int}, []interface{}{float64(1), float64(2)})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, 2}, v)
}

func TestCoerceInputObjectAppliesDefaultsAndRejectsUnknownFields(t *testing.T) {
	reg := NewRegistry()
	input := &InputObject{
		Name_: "PointInput",
		Fields: map[string]*InputField{
			"x": {Name: "x", Type: &NonNull{Of: Int}},
			"y": {Name: "y", Type: Int, DefaultValue: 0, HasDefault: true},
		},
		FieldOrder: []string{"x", "y"},
	}

	v, err := CoerceInput(reg, input, map[string]interface{}{"x": float64(5)})
	require.NoError(t, err)
	m := v.(map[string]interface{})
	assert.Equal(t, 5, m["x"])
	assert.Equal(t, 0, m["y"], "a missing field with a declared default must be filled in")

	_, err = CoerceInput(reg, input, map[string]interface{}{"x": float64(5), "z": float64(1)})
	assert.Error(t, err, "an unknown input field must be rejected")

	_, err = CoerceInput(reg, input, map[string]interface{}{"y": float64(1)})
	assert.Error(t, err, "a missing Non-Null field with no default must be rejected")
}

func TestRegistryExpandLateBound(t *testing.T) {
	reg := NewRegistry()
	dog := &Object{Name_: "Dog", Fields: map[string]*Field{}}
	require.NoError(t, reg.Register(dog))

	expanded, err := reg.Expand(&LateBound{TypeName: "Dog"})
	require.NoError(t, err)
	assert.Same(t, dog, expanded)

	_, err = reg.Expand(&LateBound{TypeName: "Cat"})
	assert.Error(t, err)
}

func TestRegistryExpandRejectsDoubleNonNull(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Expand(&NonNull{Of: &NonNull{Of: String}})
	assert.Error(t, err)
}

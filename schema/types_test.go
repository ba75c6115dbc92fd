package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumCoerceAndSerialize(t *testing.T) {
	color := &Enum{
		Name_: "Color",
		Values: []EnumValue{
			{Name: "RED", Value: 0},
			{Name: "GREEN", Value: 1},
		},
	}

	v, err := color.Coerce("GREEN")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = color.Coerce("BLUE")
	assert.Error(t, err)

	name, err := color.Serialize(0)
	require.NoError(t, err)
	assert.Equal(t, "RED", name)

	_, err = color.Serialize(99)
	assert.Error(t, err)
}

func TestObjectImplementsInterface(t *testing.T) {
	pet := &Interface{Name_: "Pet"}
	dog := &Object{Name_: "Dog", Interfaces: []*Interface{pet}}

	assert.True(t, dog.ImplementsInterface("Pet"))
	assert.False(t, dog.ImplementsInterface("Cat"))
}

func TestUnionHasType(t *testing.T) {
	dog := &Object{Name_: "Dog"}
	union := &Union{Name_: "Pet", Types: map[string]*Object{"Dog": dog}}

	assert.True(t, union.HasType("Dog"))
	assert.False(t, union.HasType("Cat"))
}

func TestIsInputOutputType(t *testing.T) {
	assert.True(t, IsInputType(String))
	assert.True(t, IsInputType(&List{Of: String}))
	assert.True(t, IsInputType(&NonNull{Of: String}))
	assert.False(t, IsInputType(&Object{Name_: "Dog"}))

	assert.True(t, IsOutputType(&Object{Name_: "Dog"}))
	assert.False(t, IsOutputType(&InputObject{Name_: "DogInput"}))
}

func TestHasSelectableFields(t *testing.T) {
	assert.True(t, HasSelectableFields(&Object{Name_: "Dog"}))
	assert.True(t, HasSelectableFields(&NonNull{Of: &Object{Name_: "Dog"}}))
	assert.False(t, HasSelectableFields(String))
}

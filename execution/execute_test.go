package execution_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/loamwire/graphql/execution"
	"github.com/loamwire/graphql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// dog/cat/pet fixtures mirror the Dog/Cat/Pet schema used throughout the
// end-to-end scenarios this package is built against: a Pet union of Dog
// and Cat, a Query.pets field returning both, and a bark/meow field unique
// to each concrete type.

type dogSource struct {
	Name string
	Bark string
}

type catSource struct {
	Name string
	Meow string
}

func buildPetSchema(t *testing.T) *schema.Schema {
	t.Helper()

	dog := &schema.Object{
		Name_: "Dog",
		Fields: map[string]*schema.Field{
			"name": {
				Name: "name", Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*dogSource).Name, nil
				},
			},
			"bark": {
				Name: "bark", Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*dogSource).Bark, nil
				},
			},
		},
		FieldOrder: []string{"name", "bark"},
		IsTypeOf:   func(v interface{}) bool { _, ok := v.(*dogSource); return ok },
	}

	cat := &schema.Object{
		Name_: "Cat",
		Fields: map[string]*schema.Field{
			"name": {
				Name: "name", Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*catSource).Name, nil
				},
			},
			"meow": {
				Name: "meow", Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*catSource).Meow, nil
				},
			},
		},
		FieldOrder: []string{"name", "meow"},
		IsTypeOf:   func(v interface{}) bool { _, ok := v.(*catSource); return ok },
	}

	pet := &schema.Union{
		Name_: "Pet",
		Types: map[string]*schema.Object{"Dog": dog, "Cat": cat},
	}

	query := &schema.Object{
		Name_: "Query",
		Fields: map[string]*schema.Field{
			"pets": {
				Name: "pets", Type: &schema.NonNull{Of: &schema.List{Of: &schema.NonNull{Of: pet}}},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return []interface{}{
						&dogSource{Name: "Rex", Bark: "Woof"},
						&catSource{Name: "Tom", Meow: "Meow"},
					}, nil
				},
			},
			"failingField": {
				Name: "failingField", Type: schema.String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return nil, assertErr("boom")
				},
			},
		},
		FieldOrder: []string{"pets", "failingField"},
	}

	s, err := schema.NewSchema(query, nil, nil, dog, cat)
	require.NoError(t, err)
	return s
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func parseQuery(t *testing.T, q string) *ast.QueryDocument {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Input: q})
	require.Nil(t, err)
	return doc
}

func TestExecuteUnionSelectsConcreteFields(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `{
		pets {
			__typename
			... on Dog { name bark }
			... on Cat { name meow }
		}
	}`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	pets := data["pets"].([]interface{})
	require.Len(t, pets, 2)

	dog := pets[0].(map[string]interface{})
	assert.Equal(t, "Dog", dog["__typename"])
	assert.Equal(t, "Rex", dog["name"])
	assert.Equal(t, "Woof", dog["bark"])

	cat := pets[1].(map[string]interface{})
	assert.Equal(t, "Cat", cat["__typename"])
	assert.Equal(t, "Tom", cat["name"])
	assert.Equal(t, "Meow", cat["meow"])
}

func TestExecuteNullableFieldErrorDoesNotNullSiblings(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `{ failingField pets { __typename } }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	require.Len(t, resp.Errors, 1)

	data := resp.Data.(map[string]interface{})
	assert.Nil(t, data["failingField"])
	assert.NotNil(t, data["pets"], "a sibling of the failing nullable field must still be resolved")
}

func TestExecuteSkipAndIncludeDirectives(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `query($omit: Boolean!) {
		pets {
			__typename @skip(if: $omit)
		}
	}`)

	resp := execution.Execute(execution.Params{
		Schema:       s,
		Document:     doc,
		RawVariables: map[string]interface{}{"omit": true},
	})
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	pets := data["pets"].([]interface{})
	dog := pets[0].(map[string]interface{})
	_, hasTypename := dog["__typename"]
	assert.False(t, hasTypename, "@skip(if: true) must exclude the field entirely")
}

func TestExecuteUnknownOperationName(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `query A { failingField } query B { failingField }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc, OperationName: "C"})
	require.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.Data)
}

func TestExecuteNonNullFieldReturningNullBubblesWithExactMessage(t *testing.T) {
	dog := &schema.Object{
		Name_: "Dog",
		Fields: map[string]*schema.Field{
			"name": {
				Name: "name", Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return nil, nil
				},
			},
		},
		FieldOrder: []string{"name"},
	}
	query := &schema.Object{
		Name_: "Query",
		Fields: map[string]*schema.Field{
			"dog": {
				Name: "dog", Type: dog,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return struct{}{}, nil
				},
			},
		},
		FieldOrder: []string{"dog"},
	}
	s, err := schema.NewSchema(query, nil, nil)
	require.NoError(t, err)

	doc := parseQuery(t, `{ dog { name } }`)
	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Cannot return null for non-nullable field Dog.name", resp.Errors[0].Message)
	assert.Equal(t, []interface{}{"dog", "name"}, resp.Errors[0].Path)

	data := resp.Data.(map[string]interface{})
	assert.Nil(t, data["dog"], "the error must bubble to the nearest nullable ancestor")
}

func TestExecuteDataPresentWithNullFieldOnFieldFailure(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `{ failingField }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	encoded, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"failingField":null},"errors":[{"message":"boom","path":["failingField"]}]}`, string(encoded))
}

func TestExecuteDataAbsentOnRequestLevelFailure(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `query A { failingField } query B { failingField }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc, OperationName: "C"})
	encoded, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &raw))
	_, hasData := raw["data"]
	assert.False(t, hasData, "a request-level failure must omit the data key entirely")
}

func TestExecuteSchemaFieldOnRootQuery(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `{ __schema { queryType mutationType types { name } } }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	require.Empty(t, resp.Errors)

	data := resp.Data.(map[string]interface{})
	sch := data["__schema"].(map[string]interface{})
	assert.Equal(t, "Query", sch["queryType"])
	assert.Equal(t, "", sch["mutationType"])

	var names []string
	for _, entry := range sch["types"].([]interface{}) {
		names = append(names, entry.(map[string]interface{})["name"].(string))
	}
	assert.Contains(t, names, "Dog")
	assert.Contains(t, names, "Pet")
	assert.Contains(t, names, "Query")
}

func TestExecuteSchemaFieldNotAvailableOnNonRootType(t *testing.T) {
	s := buildPetSchema(t)
	doc := parseQuery(t, `{ pets { __schema { queryType } } }`)

	resp := execution.Execute(execution.Params{Schema: s, Document: doc})
	require.NotEmpty(t, resp.Errors)
}

package graphql_test

import (
	"context"
	"testing"

	graphql "github.com/loamwire/graphql"
	"github.com/loamwire/graphql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoParsesAndExecutes(t *testing.T) {
	query := &schema.Object{
		Name_: "Query",
		Fields: map[string]*schema.Field{
			"hello": {
				Name: "hello",
				Type: &schema.NonNull{Of: schema.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return "world", nil
				},
			},
		},
		FieldOrder: []string{"hello"},
	}
	s, err := schema.NewSchema(query, nil, nil)
	require.NoError(t, err)

	resp := graphql.Do(context.Background(), s, `{ hello }`, "", nil)
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "world", data["hello"])
}

func TestDoReportsParseError(t *testing.T) {
	query := &schema.Object{Name_: "Query", Fields: map[string]*schema.Field{}}
	s, err := schema.NewSchema(query, nil, nil)
	require.NoError(t, err)

	resp := graphql.Do(context.Background(), s, `{ not valid `, "", nil)
	require.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.Data)
}

// Package graphql is a thin convenience wrapper pairing gqlparser's query
// parser with the execution core: Do parses a query string and immediately
// executes it, for callers that don't need to parse once and execute many
// times against the same document. The core itself (package execution)
// never parses; it only consumes an already-parsed *ast.QueryDocument.
package graphql

import (
	"context"

	"github.com/loamwire/graphql/errors"
	"github.com/loamwire/graphql/execution"
	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Response is re-exported so callers depending only on this package's entry
// point don't also need to import execution directly.
type Response = execution.Response

// Do parses query and executes it against s in one step, per the teacher's
// own top-level Do (execute.go in the teacher tree). A parse failure is
// reported the same way any other request-level failure is: a Response with
// no Data and one error.
func Do(ctx context.Context, s *schema.Schema, query string, operationName string, variables map[string]interface{}) *Response {
	doc, parseErr := parser.ParseQuery(&ast.Source{Input: query})
	if parseErr != nil {
		return &Response{Errors: []*errors.GraphQLError{errors.New("%v", parseErr)}}
	}
	return execution.Execute(execution.Params{
		Schema:        s,
		Document:      doc,
		OperationName: operationName,
		RawVariables:  variables,
		Context:       ctx,
	})
}

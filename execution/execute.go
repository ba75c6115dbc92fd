// Package execution implements component F of the execution core: given a
// built schema.Schema, a parsed gqlparser document, and raw variables, it
// selects the operation to run, coerces variables and field arguments, and
// walks the selection set to produce a response shaped per spec §6.2.
package execution

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/loamwire/graphql/errors"
	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// Params bundles the per-request inputs to Execute (spec §6.1). Document is
// an already-parsed gqlparser document; lexing and parsing are an external
// collaborator this package never performs itself.
type Params struct {
	Schema        *schema.Schema
	Document      *ast.QueryDocument
	OperationName string
	RawVariables  map[string]interface{}
	Context       context.Context
}

// Response is the wire shape described by spec §6.2: data is present
// (possibly null) for any request that reached execution, and absent only
// for a request-level failure (a parse error, an unresolvable operation, or
// a variable-coercion failure) that never began walking the selection set.
// Because a plain `Data interface{}` field cannot distinguish "execution
// produced a null root" from "execution never ran" under encoding/json's
// omitempty, Response carries its own MarshalJSON and an unexported
// attempted flag recording which case applies, grounded on the teacher's
// own custom-MarshalJSON precedent (definitions.go's Map type).
type Response struct {
	Data       interface{}
	Errors     []*errors.GraphQLError
	Extensions map[string]interface{}

	attempted bool // true once execution began, even if Data ends up nil
}

// MarshalJSON omits "data" entirely for a request-level failure and emits
// it - explicit null included - for any response where execution attempted
// to run (spec §6.2, Scenario 2: `{"data":null,"errors":[...]}`).
func (r *Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 3)
	if r.attempted {
		out["data"] = r.Data
	}
	if len(r.Errors) > 0 {
		out["errors"] = r.Errors
	}
	if len(r.Extensions) > 0 {
		out["extensions"] = r.Extensions
	}
	return json.Marshal(out)
}

// Execute runs a single operation from p.Document against p.Schema. Grounded
// on the teacher's Executor.Do/Execute (execution/execute.go in the teacher
// tree): select the operation, coerce variables, then delegate to the
// per-operation-type field walk - generalized with typed non-null bubbling
// and strictly-serial top-level mutation fields (spec §9, Open Question 2).
func Execute(p Params) *Response {
	op, err := selectOperation(p.Document, p.OperationName)
	if err != nil {
		return &Response{Errors: []*errors.GraphQLError{errors.New("%v", err)}}
	}

	root, err := rootType(p.Schema, op)
	if err != nil {
		return &Response{Errors: []*errors.GraphQLError{errors.New("%v", err)}}
	}

	ctxValue := p.Context
	if ctxValue == nil {
		ctxValue = context.Background()
	}

	variables, err := coerceVariables(p.Schema.Registry, op.VariableDefinitions, p.RawVariables)
	if err != nil {
		return &Response{Errors: []*errors.GraphQLError{errors.New("%v", err)}}
	}

	ec := &execContext{
		Context:   ctxValue,
		schema:    p.Schema,
		doc:       p.Document,
		variables: variables,
		errs:      &errSink{},
	}

	// Resolvers always run serially. Mutation top-level fields also force
	// their Lazy results serially; every other root forces its top-level
	// Lazy results concurrently, same as any nested object.
	concurrent := op.Operation != ast.Mutation

	data, perr := executeObjectFields(ec, root, nil, op.SelectionSet, concurrent)
	if perr != nil {
		ec.errs.add(perr)
		return &Response{Data: nil, Errors: ec.errs.errs, attempted: true}
	}

	return &Response{Data: data, Errors: ec.errs.errs, attempted: true}
}

// selectOperation implements spec §4.F.1's operation selection rule: an
// explicit name must match exactly one operation; an absent name requires
// the document to contain exactly one operation.
func selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, error) {
	if name != "" {
		for _, op := range doc.Operations {
			if op.Name == name {
				return op, nil
			}
		}
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	if len(doc.Operations) == 1 {
		return doc.Operations[0], nil
	}
	if len(doc.Operations) == 0 {
		return nil, fmt.Errorf("document does not contain any operations")
	}
	return nil, fmt.Errorf("must provide an operation name when the document contains multiple operations")
}

// rootType returns the schema's root Object matching op's operation type.
func rootType(s *schema.Schema, op *ast.OperationDefinition) (*schema.Object, error) {
	switch op.Operation {
	case ast.Query, "":
		if s.Query == nil {
			return nil, fmt.Errorf("schema does not define a Query root type")
		}
		return s.Query, nil
	case ast.Mutation:
		if s.Mutation == nil {
			return nil, fmt.Errorf("schema does not define a Mutation root type")
		}
		return s.Mutation, nil
	case ast.Subscription:
		if s.Subscription == nil {
			return nil, fmt.Errorf("schema does not define a Subscription root type")
		}
		return s.Subscription, nil
	default:
		return nil, fmt.Errorf("unknown operation type %q", op.Operation)
	}
}

package execution

import (
	"context"
	"fmt"
	"sync"

	"github.com/loamwire/graphql/errors"
	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// errSink collects errors from concurrently-forced sibling Lazy values (spec
// §5), so it must be safe to append to from more than one goroutine. It also
// deduplicates by (message, path): spec §3.4 describes the response's errors
// as "an ordered, deduplicated collection", and §7 requires that "duplicate
// messages at the same path are deduplicated" - which otherwise happens in
// practice whenever a field error is observed through more than one
// reference to the same position.
type errSink struct {
	mu   sync.Mutex
	errs errors.MultiError
	seen map[string]bool
}

func (s *errSink) add(err *errors.GraphQLError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dedupeKey(err)
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.errs = append(s.errs, err)
}

// dedupeKey identifies an error by its message and response path: two
// errors with the same message at the same path are the same failure
// observed twice, not two distinct ones.
func dedupeKey(err *errors.GraphQLError) string {
	return fmt.Sprintf("%s|%v", err.Message, err.Path)
}

// execContext threads the pieces every completion step needs: the response
// path accumulated so far, the error sink, coerced variables, and the
// surrounding Go context. Grounded on the teacher's exeContext
// (execution/execute.go in the teacher tree), generalized with a Schema
// pointer (and through it the Registry) so completion can call schema.CoerceInput/Registry.Expand without
// a global, and with a shared *errSink so errors collected by concurrently
// forced sibling Lazy values all land in the same response.
type execContext struct {
	context.Context

	schema    *schema.Schema
	doc       *ast.QueryDocument
	variables map[string]interface{}

	errs *errSink
	path []interface{}
}

// addErr appends err (annotated with the current path) to the error sink. A
// nil err is a no-op.
func (c *execContext) addErr(err error) {
	if err == nil {
		return
	}
	gerr, ok := err.(*errors.GraphQLError)
	if !ok {
		gerr = errors.New("%s", err.Error())
		gerr.ResolverError = err
	}
	if gerr.Path == nil {
		gerr.Path = append([]interface{}(nil), c.path...)
	}
	c.errs.add(gerr)
}

// pushPath returns a copy of c with seg appended to the response path, per
// spec §7's path-tracking requirement. The original c is left unmodified so
// sibling fields don't see each other's path segments.
func (c *execContext) pushPath(seg interface{}) *execContext {
	next := *c
	next.path = append(append([]interface{}(nil), c.path...), seg)
	return &next
}

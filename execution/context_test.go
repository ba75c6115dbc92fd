package execution

import (
	"testing"

	"github.com/loamwire/graphql/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrSinkDeduplicatesSameMessageAndPath(t *testing.T) {
	s := &errSink{}
	s.add(&errors.GraphQLError{Message: "boom", Path: []interface{}{"dog", "name"}})
	s.add(&errors.GraphQLError{Message: "boom", Path: []interface{}{"dog", "name"}})
	s.add(&errors.GraphQLError{Message: "boom", Path: []interface{}{"cat", "name"}})

	assert.Len(t, s.errs, 2, "the same message at the same path must be recorded only once")
}

func TestPushPathDoesNotMutateSibling(t *testing.T) {
	base := &execContext{path: []interface{}{"pets"}}
	a := base.pushPath(0)
	b := base.pushPath(1)

	assert.Equal(t, []interface{}{"pets", 0}, a.path)
	assert.Equal(t, []interface{}{"pets", 1}, b.path)
	assert.Equal(t, []interface{}{"pets"}, base.path, "pushPath must not mutate the original")
}

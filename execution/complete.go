package execution

import (
	"fmt"
	"reflect"

	"github.com/loamwire/graphql/errors"
	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
	"golang.org/x/sync/errgroup"
)

// newFieldError builds a GraphQLError stamped with ctx's current path but
// does not add it to ctx.errs yet. Exactly one call site - the point where
// null-bubbling stops - ever records a given instance (see completeValue's
// List case for nullable elements and executeObjectFields for nullable
// fields); everywhere else the same *errors.GraphQLError is
// propagated unchanged, so the response never reports the same failure
// twice.
func newFieldError(ctx *execContext, format string, args ...interface{}) *errors.GraphQLError {
	err := errors.New(format, args...)
	err.Path = append([]interface{}(nil), ctx.path...)
	return err
}

// completeValue implements spec §4.F.4: force any Lazy, then dispatch on the
// field's declared type to serialize scalars/enums, recurse into lists, or
// hand composite types to executeObjectFields against the resolved concrete
// Object. A non-nil returned *errors.GraphQLError is always unrecorded and
// pending: the caller must either record it (stopping propagation, because
// this position accepts null) or return it untouched (because this
// position's own type is Non-Null and cannot).
//
// parentTypeName and fieldName identify the field currently being completed
// (the same field throughout a NonNull/List recursion for one resolver
// result), used only to format the Non-Null violation message spec §4.F.4
// and Scenario 2 mandate: "Cannot return null for non-nullable field
// {Type}.{field}".
//
// Grounded on the teacher's execute/executeObject/executeList/executeUnion/
// executeInterface (execution/execute.go in the teacher tree), generalized
// to carry typed pending errors instead of string-matching a sentinel and
// to force Lazy values before dispatch.
func completeValue(ctx *execContext, t schema.Type, raw interface{}, selSet ast.SelectionSet, parentTypeName, fieldName string) (interface{}, *errors.GraphQLError) {
	forced, ferr := schema.ForceLazy(ctx, raw)
	if ferr != nil {
		return nil, newFieldError(ctx, "%v", ferr)
	}
	raw = forced

	t, err := ctx.schema.Registry.Expand(t)
	if err != nil {
		return nil, newFieldError(ctx, "%v", err)
	}

	if nn, ok := t.(*schema.NonNull); ok {
		inner, perr := completeValue(ctx, nn.Of, raw, selSet, parentTypeName, fieldName)
		if perr != nil {
			return nil, perr
		}
		if inner == nil {
			return nil, newFieldError(ctx, "Cannot return null for non-nullable field %s.%s", parentTypeName, fieldName)
		}
		return inner, nil
	}

	if raw == nil {
		return nil, nil
	}

	switch named := t.(type) {
	case *schema.Scalar:
		v, err := named.Serialize(raw)
		if err != nil {
			return nil, newFieldError(ctx, "%v", err)
		}
		return v, nil

	case *schema.Enum:
		v, err := named.Serialize(raw)
		if err != nil {
			return nil, newFieldError(ctx, "%v", err)
		}
		return v, nil

	case *schema.List:
		items, ok := toSlice(raw)
		if !ok {
			return nil, newFieldError(ctx, "expected a list for type %s, got %T", named.String(), raw)
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			v, perr := completeValue(ctx.pushPath(i), named.Of, item, selSet, parentTypeName, fieldName)
			if perr != nil {
				if _, elemNonNull := named.Of.(*schema.NonNull); elemNonNull {
					return nil, perr
				}
				ctx.errs.add(perr)
				v = nil
			}
			out[i] = v
		}
		return out, nil

	case *schema.Object:
		result, perr := executeObjectFields(ctx, named, raw, selSet, true)
		if perr != nil {
			return nil, perr
		}
		return result, nil

	case *schema.Interface:
		obj, rerr := resolveAbstractType(ctx, named.ResolveType, named.PossibleTypes, raw)
		if rerr != nil {
			return nil, newFieldError(ctx, "%v", rerr)
		}
		result, perr := executeObjectFields(ctx, obj, raw, selSet, true)
		if perr != nil {
			return nil, perr
		}
		return result, nil

	case *schema.Union:
		obj, rerr := resolveAbstractType(ctx, named.ResolveType, named.Types, raw)
		if rerr != nil {
			return nil, newFieldError(ctx, "%v", rerr)
		}
		result, perr := executeObjectFields(ctx, obj, raw, selSet, true)
		if perr != nil {
			return nil, perr
		}
		return result, nil

	default:
		return nil, newFieldError(ctx, "type %s is not a valid output type", t.String())
	}
}

// resolveAbstractType picks the concrete Object a runtime value completes
// against (spec §4.C): the abstract type's own TypeResolver if set,
// otherwise each candidate's IsTypeOf as a fallback. Grounded on the
// teacher's executeInterface (execution/execute.go), which falls back to a
// reflect.Type comparison when no TypeResolve hook is present.
func resolveAbstractType(ctx *execContext, resolve schema.TypeResolver, candidates map[string]*schema.Object, value interface{}) (*schema.Object, error) {
	if resolve != nil {
		if obj := resolve(ctx, value); obj != nil {
			return obj, nil
		}
	}
	for _, obj := range candidates {
		if obj.IsTypeOf != nil && obj.IsTypeOf(value) {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("could not resolve a concrete type for value of type %T", value)
}

// fieldOutcome holds one collected field's resolution, before it is folded
// into the object's result map in collection order.
type fieldOutcome struct {
	key     string
	value   interface{}
	pending *errors.GraphQLError // a failure not yet recorded; the completion loop records or propagates it
}

// executeObjectFields collects objType's applicable fields from selSet and
// resolves each one (spec §4.F.3). A field whose declared type is Non-Null
// and fails forces the whole object to fail (the returned pending error);
// a nullable field failure is recorded immediately and that key alone is set
// to null, leaving its siblings intact.
//
// Resolver invocation is strictly serial (spec §5: the executor "is neither
// preemptive nor internally parallel") - fields are looked up, have their
// arguments coerced and their Resolve function called one at a time, in
// collection order. The one concurrency §5 allows is batch-forcing sibling
// Lazy results: once every resolver has returned, any of their results that
// are a schema.Lazy are forced concurrently via golang.org/x/sync/errgroup,
// and only after that batch completes are values completed and errors
// recorded, strictly in collection order, so §7's "errors are emitted in the
// order first observed" holds regardless of which Lazy finished forcing
// first. Top-level mutation fields additionally run this force phase
// serially (concurrent=false) per Open Question 2; every other position
// passes concurrent=true.
func executeObjectFields(ctx *execContext, objType *schema.Object, source interface{}, selSet ast.SelectionSet, concurrent bool) (map[string]interface{}, *errors.GraphQLError) {
	collected, err := collectFields(ctx.doc, ctx.schema.Registry, objType, selSet, ctx.variables, map[string]bool{})
	if err != nil {
		return nil, newFieldError(ctx, "%v", err)
	}

	outcomes := make([]fieldOutcome, len(collected))
	fieldCtxs := make([]*execContext, len(collected))
	fields := make([]*schema.Field, len(collected))
	rawValues := make([]interface{}, len(collected))

	for i, cf := range collected {
		fieldCtx := ctx.pushPath(cf.responseKey)
		fieldCtxs[i] = fieldCtx
		outcomes[i].key = cf.responseKey

		var field *schema.Field
		switch cf.fields[0].Name {
		case "__typename":
			field = schema.TypeNameField(objType.Name())
		case "__schema":
			if objType == ctx.schema.Query {
				field = schema.SchemaField(ctx.schema)
			}
		default:
			field = objType.Fields[cf.fields[0].Name]
		}
		if field == nil {
			outcomes[i].pending = newFieldError(fieldCtx, "unknown field %q on type %q", cf.fields[0].Name, objType.Name())
			continue
		}
		fields[i] = field

		args, err := coerceArguments(ctx.schema.Registry, field.Args, cf.fields[0].Arguments, ctx.variables)
		if err != nil {
			recordOrPend(ctx, fieldCtx, field.Type, err, &outcomes[i])
			continue
		}

		value, resolveErr := field.Resolve(fieldCtx, source, args)
		if resolveErr != nil {
			recordOrPend(ctx, fieldCtx, field.Type, resolveErr, &outcomes[i])
			continue
		}
		rawValues[i] = value
	}

	forceOne := func(i int) error {
		if outcomes[i].pending != nil || fields[i] == nil {
			return nil
		}
		forced, ferr := schema.ForceLazy(fieldCtxs[i], rawValues[i])
		if ferr != nil {
			outcomes[i].pending = newFieldError(fieldCtxs[i], "%v", ferr)
			return nil
		}
		rawValues[i] = forced
		return nil
	}
	if concurrent && len(collected) > 1 {
		g, _ := errgroup.WithContext(ctx)
		for i := range collected {
			i := i
			g.Go(func() error { return forceOne(i) })
		}
		_ = g.Wait() // forceOne never itself returns an error; failures live in outcomes
	} else {
		for i := range collected {
			_ = forceOne(i)
		}
	}

	result := make(map[string]interface{}, len(outcomes))
	for i, cf := range collected {
		pending := outcomes[i].pending
		if pending == nil {
			merged := mergeSelectionSets(cf.fields)
			completed, perr := completeValue(fieldCtxs[i], fields[i].Type, rawValues[i], merged, objType.Name(), fields[i].Name)
			if perr == nil {
				result[cf.responseKey] = completed
				continue
			}
			pending = perr
		}
		if fields[i] == nil {
			return nil, pending
		}
		if _, isNonNull := fields[i].Type.(*schema.NonNull); isNonNull {
			return nil, pending
		}
		ctx.errs.add(pending)
		result[cf.responseKey] = nil
	}
	return result, nil
}

// recordOrPend applies a field-level failure (from argument coercion or
// resolver error) according to the field's own declared type: Non-Null
// leaves the error pending on out so the caller propagates it and fails the
// whole object; nullable records it immediately and leaves out.value nil.
func recordOrPend(ctx, fieldCtx *execContext, fieldType schema.Type, cause error, out *fieldOutcome) {
	ferr := newFieldError(fieldCtx, "%v", cause)
	if _, isNonNull := fieldType.(*schema.NonNull); isNonNull {
		out.pending = ferr
		return
	}
	ctx.errs.add(ferr)
}

// mergeSelectionSets concatenates the sub-selection sets of every ast.Field
// collected under the same response key, per spec §4.F.2's merging
// requirement for fields appearing more than once (e.g. via an inline
// fragment and a direct selection).
func mergeSelectionSets(fields []*ast.Field) ast.SelectionSet {
	var out ast.SelectionSet
	for _, f := range fields {
		out = append(out, f.SelectionSet...)
	}
	return out
}

// toSlice reflects over raw to produce a uniform []interface{}, so resolvers
// may return any concrete slice type ([]string, []*Dog, ...) rather than
// being forced to box everything as []interface{}. Grounded on the
// teacher's reflect-based unwrap helper (execution/execute.go).
func toSlice(raw interface{}) ([]interface{}, bool) {
	if items, ok := raw.([]interface{}); ok {
		return items, true
	}
	v := reflect.ValueOf(raw)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}

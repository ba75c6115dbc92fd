package schema

import "fmt"

// DirectiveLocation names a position in a document or type-system definition
// a Directive may be attached to (spec §3.1). Ported from the teacher's
// directive.go constant set, trimmed to the executable-directive locations
// the core dispatches on; no type-system locations are declared.
type DirectiveLocation string

const (
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
)

// Directive declares an executable directive's name, argument shape and
// locations. @skip and @include (spec §4.D) are registered on every Schema
// by default; callers may add their own.
type Directive struct {
	Name      string
	Desc      string
	Locations []DirectiveLocation
	Args      []*Argument
}

// Schema is the root of a built type system: the three root operation types
// plus every type transitively reachable from them, held in a Registry
// (spec §4.A). Grounded on the teacher's Schema{Query, Mutation, Subscription}
// (internal/types.go), generalized with an explicit Directives map and a
// NewSchema constructor that performs the transitive-closure walk the teacher leaves
// implicit in SchemaBuilder.
type Schema struct {
	Query        *Object
	Mutation     *Object
	Subscription *Object
	Directives   map[string]*Directive
	Registry     *Registry
}

// defaultDirectives returns the @skip/@include directives every Schema
// carries, per spec §4.D.
func defaultDirectives() map[string]*Directive {
	ifArg := &Argument{
		Name: "if",
		Type: &NonNull{Of: Boolean},
	}
	return map[string]*Directive{
		"include": {
			Name:      "include",
			Desc:      "Directs the executor to include this field or fragment only when the `if` argument is true.",
			Locations: []DirectiveLocation{DirectiveLocationField, DirectiveLocationFragmentSpread, DirectiveLocationInlineFragment},
			Args:      []*Argument{ifArg},
		},
		"skip": {
			Name:      "skip",
			Desc:      "Directs the executor to skip this field or fragment when the `if` argument is true.",
			Locations: []DirectiveLocation{DirectiveLocationField, DirectiveLocationFragmentSpread, DirectiveLocationInlineFragment},
			Args:      []*Argument{ifArg},
		},
	}
}

// NewSchema builds a Schema from its root operation types, populating a
// fresh Registry with the built-in scalars, the root operation types, every
// type transitively reachable from them, and each of extraTypes with the
// types reachable from it. The introspection types (__Schema, __Type, ...)
// are not registered. query must not be nil; mutation and subscription may
// be.
func NewSchema(query, mutation, subscription *Object, extraTypes ...NamedType) (*Schema, error) {
	if query == nil {
		return nil, fmt.Errorf("schema requires a Query root type")
	}

	s := &Schema{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
		Directives:   defaultDirectives(),
		Registry:     NewRegistry(),
	}

	if err := s.Registry.Register(query); err != nil {
		return nil, err
	}
	if err := s.walk(query); err != nil {
		return nil, err
	}
	if mutation != nil {
		if err := s.Registry.Register(mutation); err != nil {
			return nil, err
		}
		if err := s.walk(mutation); err != nil {
			return nil, err
		}
	}
	if subscription != nil {
		if err := s.Registry.Register(subscription); err != nil {
			return nil, err
		}
		if err := s.walk(subscription); err != nil {
			return nil, err
		}
	}
	for _, t := range extraTypes {
		if err := s.registerAndWalk(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// registerAndWalk registers t (if not already present) then walks any
// composite type reachable from it.
func (s *Schema) registerAndWalk(t NamedType) error {
	if existing, ok := s.Registry.Get(t.Name()); ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("type %q already registered", t.Name())
	}
	if err := s.Registry.Register(t); err != nil {
		return err
	}
	return s.walkNamed(t)
}

// walk registers every type transitively reachable from an Object's fields,
// argument types and declared interfaces.
func (s *Schema) walk(o *Object) error {
	for _, name := range o.FieldOrder {
		f := o.Fields[name]
		if err := s.walkType(f.Type); err != nil {
			return err
		}
		for _, arg := range f.Args {
			if err := s.walkType(arg.Type); err != nil {
				return err
			}
		}
	}
	for _, iface := range o.Interfaces {
		if err := s.registerAndWalk(iface); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) walkNamed(t NamedType) error {
	switch t := t.(type) {
	case *Object:
		return s.walk(t)
	case *Interface:
		for _, name := range t.FieldOrder {
			f := t.Fields[name]
			if err := s.walkType(f.Type); err != nil {
				return err
			}
		}
		return nil
	case *Union:
		for _, member := range t.Types {
			if err := s.registerAndWalk(member); err != nil {
				return err
			}
		}
		return nil
	case *InputObject:
		for _, name := range t.FieldOrder {
			f := t.Fields[name]
			if err := s.walkType(f.Type); err != nil {
				return err
			}
		}
		return nil
	default:
		// Scalar, Enum: no further references.
		return nil
	}
}

// walkType unwraps List/NonNull and LateBound before dispatching to
// walkNamed. A LateBound whose referent is not registered yet is left
// unresolved here; Registry.Expand resolves it lazily during execution, so
// schema construction only needs to walk referents that are concrete at
// build time.
func (s *Schema) walkType(t Type) error {
	switch t := t.(type) {
	case *List:
		return s.walkType(t.Of)
	case *NonNull:
		return s.walkType(t.Of)
	case *LateBound:
		return nil
	case NamedType:
		return s.registerAndWalk(t)
	default:
		return nil
	}
}

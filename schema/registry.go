package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Registry maps type names to their NamedType and expands LateBound
// references on demand (spec §4.A). Grounded on the teacher's
// Schema.TypeMap (definitions.go) and internal/utils/typeFromAst.go's
// TypeFromAst, generalized to consume gqlparser's *ast.Type instead of a
// hand-rolled AST and to return errors instead of panicking on an unknown
// name.
type Registry struct {
	types map[string]NamedType
}

// NewRegistry returns a Registry seeded with the built-in scalars.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]NamedType)}
	for _, s := range Builtins() {
		r.types[s.Name_] = s
	}
	return r
}

// Register adds a named type to the registry. Registering the same name
// twice with different identity is a schema-construction error.
func (r *Registry) Register(t NamedType) error {
	if existing, ok := r.types[t.Name()]; ok && existing != t {
		return fmt.Errorf("type %q already registered", t.Name())
	}
	r.types[t.Name()] = t
	return nil
}

// Get returns the named type, if registered.
func (r *Registry) Get(name string) (NamedType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Expand resolves a *LateBound reference (and any LateBound nested inside a
// List/NonNull wrapper) against the registry, returning an error if the
// referenced name was never declared. Every other variant is returned
// unchanged. Completion and coercion code calls this before switching on a
// Type so LateBound never leaks into a type switch (spec §9).
func (r *Registry) Expand(t Type) (Type, error) {
	switch t := t.(type) {
	case *LateBound:
		named, ok := r.types[t.TypeName]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", t.TypeName)
		}
		return r.Expand(named)
	case *List:
		of, err := r.Expand(t.Of)
		if err != nil {
			return nil, err
		}
		return &List{Of: of}, nil
	case *NonNull:
		of, err := r.Expand(t.Of)
		if err != nil {
			return nil, err
		}
		if _, isNonNull := of.(*NonNull); isNonNull {
			return nil, fmt.Errorf("NonNull must not wrap NonNull (type %s)", t.String())
		}
		return &NonNull{Of: of}, nil
	default:
		return t, nil
	}
}

// ResolveAST recursively strips ast.Type's List/NonNull wrapping and looks up
// the terminal named type, per spec §4.A. A `[T]!` ast.Type becomes
// NonNull(List(T)); gqlparser represents NonNull as a flag alongside the Elem
// pointer rather than as a separate wrapper node, so both are peeled off at
// the same level here.
func (r *Registry) ResolveAST(ref *ast.Type) (Type, error) {
	if ref == nil {
		return nil, fmt.Errorf("nil type reference")
	}

	var base Type
	if ref.Elem != nil {
		inner, err := r.ResolveAST(ref.Elem)
		if err != nil {
			return nil, err
		}
		base = &List{Of: inner}
	} else {
		named, ok := r.types[ref.NamedType]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", ref.NamedType)
		}
		base = named
	}

	if ref.NonNull {
		if _, isNonNull := base.(*NonNull); isNonNull {
			return nil, fmt.Errorf("NonNull must not wrap NonNull (type %s)", ref.String())
		}
		return &NonNull{Of: base}, nil
	}
	return base, nil
}

// AllTypes returns every registered named type, in no particular order. Used
// by Introspect to list the schema's types.
func (r *Registry) AllTypes() map[string]NamedType {
	return r.types
}

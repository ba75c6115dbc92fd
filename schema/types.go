// Package schema implements components A and B of the execution core: the
// type registry and the algebra of GraphQL types, together with the
// resolver/type-resolver contracts (component C) that output types carry.
//
// Adapted from the teacher repo's internal.Type variant
// (_examples/qktrzrj-graphql/internal/types.go and definitions.go): the same
// tagged-union shape (Scalar/Enum/Object/Interface/Union/InputObject/List/
// NonNull), generalized with a LateBound variant so recursive schemas (Dog ->
// Human -> Dog, Pet union members) can be built without Go initialization-
// order cycles.
package schema

import (
	"context"
	"fmt"
)

// Type is the tagged-variant interface implemented by every member of the
// type algebra described in spec §3.1. isGraphQLType is unexported so the
// variant set is closed to this package; exhaustive switches elsewhere over
// Type are a closed match, not an open one (see spec §9 "Variant dispatch").
type Type interface {
	String() string
	isGraphQLType()
}

// NamedType is a Type that carries its own name and description: every
// variant except List, NonNull and LateBound.
type NamedType interface {
	Type
	Name() string
	Description() string
}

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*InputObject)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)
	_ Type = (*LateBound)(nil)

	_ NamedType = (*Scalar)(nil)
	_ NamedType = (*Enum)(nil)
	_ NamedType = (*Object)(nil)
	_ NamedType = (*Interface)(nil)
	_ NamedType = (*Union)(nil)
	_ NamedType = (*InputObject)(nil)
)

// Resolver produces a raw field value. It may return a Lazy instead of a
// concrete value; the executor forces it before completion continues.
type Resolver func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// TypeResolver picks the concrete Object a runtime value should be completed
// against, for Interface and Union fields (spec §4.C).
type TypeResolver func(ctx context.Context, value interface{}) *Object

// Scalar is a leaf type with coercion (input) and serialization (output)
// functions. Grounded on the teacher's ScalarBuilder in definitions.go,
// trimmed to the two functions the spec requires.
type Scalar struct {
	Name_ string
	Desc  string

	// Coerce turns an input value (a variable's JSON-decoded value, or an
	// argument literal already converted to its native Go shape) into the
	// scalar's canonical representation. Returns an error on failure, which
	// CoerceInput wraps in an InputCoercionError.
	Coerce func(input interface{}) (interface{}, error)

	// Serialize turns a resolver's raw value into an output-ready value.
	Serialize func(raw interface{}) (interface{}, error)
}

func (s *Scalar) String() string       { return s.Name_ }
func (s *Scalar) Name() string         { return s.Name_ }
func (s *Scalar) Description() string  { return s.Desc }
func (s *Scalar) isGraphQLType()       {}

// EnumValue is one (name, internal value) pair of an Enum, per spec §3.1.
type EnumValue struct {
	Name              string
	Value             interface{}
	Description       string
	DeprecationReason string
}

// Enum serializes resolver values back to their declared name and coerces
// external names to the matching internal value. Grounded on the teacher's
// Enum in definitions.go (name/value lookup maps built from an ordered list).
type Enum struct {
	Name_  string
	Desc   string
	Values []EnumValue

	nameToValue map[string]interface{}
	valueToName map[interface{}]string
}

func (e *Enum) String() string      { return e.Name_ }
func (e *Enum) Name() string        { return e.Name_ }
func (e *Enum) Description() string { return e.Desc }
func (e *Enum) isGraphQLType()      {}

// index lazily builds the lookup maps from Values. Called by Coerce/Serialize
// so a hand-built Enum literal needs no explicit initialization step.
func (e *Enum) index() {
	if e.nameToValue != nil {
		return
	}
	e.nameToValue = make(map[string]interface{}, len(e.Values))
	e.valueToName = make(map[interface{}]string, len(e.Values))
	for _, v := range e.Values {
		e.nameToValue[v.Name] = v.Value
		e.valueToName[v.Value] = v.Name
	}
}

// Coerce validates that name is one of the enum's declared names and returns
// its internal value.
func (e *Enum) Coerce(name interface{}) (interface{}, error) {
	e.index()
	s, ok := name.(string)
	if !ok {
		return nil, fmt.Errorf("enum %s: expected a name string, got %T", e.Name_, name)
	}
	v, ok := e.nameToValue[s]
	if !ok {
		return nil, fmt.Errorf("enum %s: %q is not a valid value", e.Name_, s)
	}
	return v, nil
}

// Serialize finds the declared name whose internal value equals raw.
func (e *Enum) Serialize(raw interface{}) (interface{}, error) {
	e.index()
	name, ok := e.valueToName[raw]
	if !ok {
		return nil, fmt.Errorf("enum %s: %v is not a valid internal value", e.Name_, raw)
	}
	return name, nil
}

// Field is one field of an Object or Interface: a name, declared type,
// arguments, resolver and optional deprecation (spec §3.1).
type Field struct {
	Name              string
	Type              Type
	Args              []*Argument
	Resolve           Resolver
	Description       string
	DeprecationReason string
}

// Argument is one declared argument of a Field or Directive (spec §3.1).
type Argument struct {
	Name         string
	Type         Type
	DefaultValue interface{}
	HasDefault   bool
	Description  string
}

// Object is an output composite type: a field map (kept in declaration order
// via FieldOrder), the interfaces it implements, and an optional runtime
// discriminator used by Interface/Union completion when no explicit
// TypeResolver is set on the abstract type (spec §4.F.4's Interface/Union
// case; teacher precedent: executeInterface's reflect.Type fallback match in
// execution/execute.go).
type Object struct {
	Name_      string
	Desc       string
	Fields     map[string]*Field
	FieldOrder []string
	Interfaces []*Interface

	// IsTypeOf, if set, identifies whether a raw resolver value belongs to
	// this Object type; used as the union/interface type-resolution
	// fallback when the abstract type has no explicit TypeResolver.
	IsTypeOf func(value interface{}) bool
}

func (o *Object) String() string      { return o.Name_ }
func (o *Object) Name() string        { return o.Name_ }
func (o *Object) Description() string { return o.Desc }
func (o *Object) isGraphQLType()      {}

// ImplementsInterface reports whether the object declares the named
// interface.
func (o *Object) ImplementsInterface(name string) bool {
	for _, i := range o.Interfaces {
		if i.Name_ == name {
			return true
		}
	}
	return false
}

// Interface is an abstract output type whose concrete Object is determined
// at completion time via ResolveType (spec §3.1, §4.C).
type Interface struct {
	Name_         string
	Desc          string
	Fields        map[string]*Field
	FieldOrder    []string
	ResolveType   TypeResolver
	PossibleTypes map[string]*Object
}

func (i *Interface) String() string      { return i.Name_ }
func (i *Interface) Name() string        { return i.Name_ }
func (i *Interface) Description() string { return i.Desc }
func (i *Interface) isGraphQLType()      {}

// Union is an abstract output type over a fixed set of Object types (spec
// §3.1).
type Union struct {
	Name_       string
	Desc        string
	Types       map[string]*Object
	ResolveType TypeResolver
}

func (u *Union) String() string      { return u.Name_ }
func (u *Union) Name() string        { return u.Name_ }
func (u *Union) Description() string { return u.Desc }
func (u *Union) isGraphQLType()      {}

// HasType reports whether the named Object is one of the union's possible
// types.
func (u *Union) HasType(name string) bool {
	_, ok := u.Types[name]
	return ok
}

// InputField is one field of an InputObject (spec §3.1).
type InputField struct {
	Name         string
	Type         Type
	DefaultValue interface{}
	HasDefault   bool
	Description  string
}

// InputObject is an input composite type: an ordered field map, plus an
// optional binding to a Go struct type used for validator-tag enforcement
// (see schema/input.go; this is the go-playground/validator enrichment
// described in SPEC_FULL.md §10, grounded on the teacher's
// schemabuilder/validator.go).
type InputObject struct {
	Name_      string
	Desc       string
	Fields     map[string]*InputField
	FieldOrder []string

	GoType   interface{} // zero value of the bound struct, or nil
	Validate bool
}

func (i *InputObject) String() string      { return i.Name_ }
func (i *InputObject) Name() string        { return i.Name_ }
func (i *InputObject) Description() string { return i.Desc }
func (i *InputObject) isGraphQLType()      {}

// List is the wrapping modifier `[T]` (spec §3.1).
type List struct {
	Of Type
}

func (l *List) String() string { return fmt.Sprintf("[%s]", l.Of.String()) }
func (l *List) isGraphQLType() {}

// NonNull is the wrapping modifier `T!` (spec §3.1). Of must never itself be
// a *NonNull; Registry.ResolveAST enforces this when building types from the
// AST.
type NonNull struct {
	Of Type
}

func (n *NonNull) String() string { return fmt.Sprintf("%s!", n.Of.String()) }
func (n *NonNull) isGraphQLType() {}

// LateBound is an unresolved by-name reference to a type that may not yet
// exist in the registry at the point a schema literal is constructed (spec
// §3.1, §4.A, §9 "Recursive type definitions"). Completion and coercion code
// must never switch on *LateBound directly; Registry.Expand resolves it to
// its referent before any such dispatch.
type LateBound struct {
	TypeName string
}

func (l *LateBound) String() string { return l.TypeName }
func (l *LateBound) isGraphQLType() {}

// IsInputType reports whether t may appear in an input position (spec §3.1
// invariant: Scalar, Enum, InputObject, List-of-input, NonNull-of-input).
// LateBound is resolved by the caller before this is evaluated meaningfully;
// called with an unresolved LateBound it conservatively returns false.
func IsInputType(t Type) bool {
	switch t := t.(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	case *List:
		return IsInputType(t.Of)
	case *NonNull:
		return IsInputType(t.Of)
	default:
		return false
	}
}

// IsOutputType reports whether t may appear in an output position (spec
// §3.1 invariant).
func IsOutputType(t Type) bool {
	switch t := t.(type) {
	case *Scalar, *Enum, *Object, *Interface, *Union:
		return true
	case *List:
		return IsOutputType(t.Of)
	case *NonNull:
		return IsOutputType(t.Of)
	default:
		return false
	}
}

// HasSelectableFields reports whether a (possibly wrapped) type has its own
// selection set at completion time, i.e. is or wraps an Object, Interface or
// Union.
func HasSelectableFields(t Type) bool {
	switch t := t.(type) {
	case *Object, *Interface, *Union:
		return true
	case *List:
		return HasSelectableFields(t.Of)
	case *NonNull:
		return HasSelectableFields(t.Of)
	default:
		return false
	}
}

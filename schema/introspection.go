package schema

import "context"

// Minimal introspection support: the `__typename` meta-field every
// selection set implicitly carries, plus the `__schema` field injected only
// on the root query type (spec §4.F.3 point 2), exposing just enough of the
// type system to name root types and list the types reachable from them.
// Spec §1 scopes full introspection-schema population out of the core; this
// is the "minimal hooks" carve-out it leaves in, adapted from the shape of
// the teacher's __Schema/__Type (introspection.go) trimmed to
// name/kind/description rather than the full introspection query surface.

// TypeNameField returns the `__typename` field every Object/Interface/Union
// carries implicitly. concreteName is always an Object's name: for
// Interface/Union fields, completion first resolves the concrete Object and
// then builds this field with that Object's name (see execution/complete.go).
func TypeNameField(concreteName string) *Field {
	return &Field{
		Name: "__typename",
		Type: &NonNull{Of: String},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return concreteName, nil
		},
	}
}

// __Schema is the minimal shape returned by the root __schema field: root
// type names and a flat list of every named type, by kind.
type __Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            []__Type
}

// __Type is the minimal per-type shape __schema.types reports.
type __Type struct {
	Kind        string
	Name        string
	Description string
}

// kindOf classifies a NamedType into GraphQL's TypeKind vocabulary.
func kindOf(t NamedType) string {
	switch t.(type) {
	case *Scalar:
		return "SCALAR"
	case *Enum:
		return "ENUM"
	case *Object:
		return "OBJECT"
	case *Interface:
		return "INTERFACE"
	case *Union:
		return "UNION"
	case *InputObject:
		return "INPUT_OBJECT"
	default:
		return "UNKNOWN"
	}
}

// Introspect builds the __Schema snapshot for s. Called by SchemaField's
// resolver; kept free-standing so it can also be used directly by tests
// without going through execution.
func Introspect(s *Schema) *__Schema {
	out := &__Schema{}
	if s.Query != nil {
		out.QueryType = s.Query.Name()
	}
	if s.Mutation != nil {
		out.MutationType = s.Mutation.Name()
	}
	if s.Subscription != nil {
		out.SubscriptionType = s.Subscription.Name()
	}
	for _, t := range s.Registry.AllTypes() {
		out.Types = append(out.Types, __Type{
			Kind:        kindOf(t),
			Name:        t.Name(),
			Description: t.Description(),
		})
	}
	return out
}

// schemaObjectType builds the (unregistered) "__Schema" output Object that
// backs the `__schema` field's selection set: just enough fields to report
// root type names and the list of reachable types, never the full
// __Type/__Field introspection surface spec §1 excludes.
func schemaObjectType() *Object {
	return &Object{
		Name_: "__Schema",
		Fields: map[string]*Field{
			"queryType": {
				Name: "queryType", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Schema).QueryType, nil
				},
			},
			"mutationType": {
				Name: "mutationType", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Schema).MutationType, nil
				},
			},
			"subscriptionType": {
				Name: "subscriptionType", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Schema).SubscriptionType, nil
				},
			},
			"types": {
				Name: "types", Type: &List{Of: typeObjectType()},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					snapshot := source.(*__Schema)
					out := make([]interface{}, len(snapshot.Types))
					for i := range snapshot.Types {
						out[i] = &snapshot.Types[i]
					}
					return out, nil
				},
			},
		},
		FieldOrder: []string{"queryType", "mutationType", "subscriptionType", "types"},
	}
}

// typeObjectType builds the (unregistered) "__Type" output Object reporting
// one entry of __Schema.types.
func typeObjectType() *Object {
	return &Object{
		Name_: "__Type",
		Fields: map[string]*Field{
			"kind": {
				Name: "kind", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Type).Kind, nil
				},
			},
			"name": {
				Name: "name", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Type).Name, nil
				},
			},
			"description": {
				Name: "description", Type: String,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(*__Type).Description, nil
				},
			},
		},
		FieldOrder: []string{"kind", "name", "description"},
	}
}

// SchemaField returns the `__schema` meta-field injected only on the root
// query type (spec §4.F.3 point 2): execution/complete.go's
// executeObjectFields wires it in exactly where it wires in TypeNameField,
// guarded so it is only ever offered when the enclosing Object is s.Query.
func SchemaField(s *Schema) *Field {
	return &Field{
		Name: "__schema",
		Type: &NonNull{Of: schemaObjectType()},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return Introspect(s), nil
		},
	}
}

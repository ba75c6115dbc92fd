package schema

import "fmt"

// InputCoercionError is raised whenever a value cannot be coerced into its
// declared input type (spec §4.B, §7).
type InputCoercionError struct {
	TypeName string
	Reason   error
}

func (e *InputCoercionError) Error() string {
	return fmt.Sprintf("could not coerce value for type %q: %v", e.TypeName, e.Reason)
}

func (e *InputCoercionError) Unwrap() error { return e.Reason }

// CoerceInput applies the coercion rules of spec §4.B to val against t,
// expanding any LateBound reference through reg first. This is the single
// dispatch point used by both variable coercion (execution/variables.go) and
// argument coercion (execution/arguments.go), grounded on the teacher's
// per-scalar ParseValue functions (definitions.go) generalized across the
// whole type algebra the way spec §4.B specifies.
func CoerceInput(reg *Registry, t Type, val interface{}) (interface{}, error) {
	t, err := reg.Expand(t)
	if err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case *NonNull:
		if val == nil {
			return nil, &InputCoercionError{TypeName: t.String(), Reason: fmt.Errorf("value is null")}
		}
		return CoerceInput(reg, t.Of, val)

	case *Scalar:
		if val == nil {
			return nil, nil
		}
		v, err := t.Coerce(val)
		if err != nil {
			return nil, &InputCoercionError{TypeName: t.Name_, Reason: err}
		}
		return v, nil

	case *Enum:
		if val == nil {
			return nil, nil
		}
		v, err := t.Coerce(val)
		if err != nil {
			return nil, &InputCoercionError{TypeName: t.Name_, Reason: err}
		}
		return v, nil

	case *List:
		if val == nil {
			return nil, nil
		}
		// A bare (non-list) value is coerced into a one-element list, per
		// spec §4.B and Testable Property 7.
		items, isList := val.([]interface{})
		if !isList {
			elem, err := CoerceInput(reg, t.Of, val)
			if err != nil {
				return nil, err
			}
			return []interface{}{elem}, nil
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			elem, err := CoerceInput(reg, t.Of, item)
			if err != nil {
				return nil, fmt.Errorf("in element %d: %w", i, err)
			}
			out[i] = elem
		}
		return out, nil

	case *InputObject:
		if val == nil {
			return nil, nil
		}
		return coerceInputObject(reg, t, val)

	default:
		return nil, fmt.Errorf("type %q cannot appear in an input position", t.String())
	}
}

func coerceInputObject(reg *Registry, t *InputObject, val interface{}) (interface{}, error) {
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, &InputCoercionError{TypeName: t.Name_, Reason: fmt.Errorf("expected an object, got %T", val)}
	}

	out := make(map[string]interface{}, len(t.Fields))
	for name, field := range t.Fields {
		raw, supplied := m[name]
		if !supplied || raw == nil {
			if field.HasDefault {
				out[name] = field.DefaultValue
				continue
			}
			if _, isNonNull := field.Type.(*NonNull); isNonNull {
				return nil, &InputCoercionError{
					TypeName: t.Name_,
					Reason:   fmt.Errorf("field %q of required type %s was not provided", name, field.Type.String()),
				}
			}
			continue
		}
		coerced, err := CoerceInput(reg, field.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = coerced
	}

	for name := range m {
		if _, known := t.Fields[name]; !known {
			return nil, &InputCoercionError{TypeName: t.Name_, Reason: fmt.Errorf("unknown field %q", name)}
		}
	}

	if t.Validate && t.GoType != nil {
		if err := validateInputObject(t, out); err != nil {
			return nil, &InputCoercionError{TypeName: t.Name_, Reason: err}
		}
	}

	return out, nil
}

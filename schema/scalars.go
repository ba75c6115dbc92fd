package schema

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Built-in scalars, ported from the teacher's Boolean/Int/Float/String/ID
// definitions in definitions.go, trimmed to the coercion/serialization rules
// spec §4.B requires (32-bit Int range, ID accepting string or int, Float as
// IEEE-754 double rather than the teacher's float32).

func numberFrom(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

var Boolean = &Scalar{
	Name_: "Boolean",
	Desc:  "The `Boolean` scalar type represents `true` or `false`.",
	Coerce: func(input interface{}) (interface{}, error) {
		switch v := input.(type) {
		case bool:
			return v, nil
		case *bool:
			if v == nil {
				return nil, errors.New("boolean cannot be nil pointer")
			}
			return *v, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to Boolean", input)
		}
	},
	Serialize: func(raw interface{}) (interface{}, error) {
		switch v := raw.(type) {
		case bool:
			return v, nil
		case *bool:
			if v == nil {
				return nil, nil
			}
			return *v, nil
		default:
			return nil, fmt.Errorf("cannot serialize %T as Boolean", raw)
		}
	},
}

var Int = &Scalar{
	Name_: "Int",
	Desc:  "The `Int` scalar type represents a signed 32-bit numeric non-fractional value.",
	Coerce: func(input interface{}) (interface{}, error) {
		f, ok := numberFrom(input)
		if !ok {
			return nil, fmt.Errorf("cannot coerce %T to Int", input)
		}
		if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", input)
		}
		return int(f), nil
	},
	Serialize: func(raw interface{}) (interface{}, error) {
		f, ok := numberFrom(raw)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as Int", raw)
		}
		if f > math.MaxInt32 || f < math.MinInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", raw)
		}
		return int(f), nil
	},
}

var Float = &Scalar{
	Name_: "Float",
	Desc:  "The `Float` scalar type represents signed double-precision fractional values as specified by IEEE 754.",
	Coerce: func(input interface{}) (interface{}, error) {
		f, ok := numberFrom(input)
		if !ok {
			return nil, fmt.Errorf("cannot coerce %T to Float", input)
		}
		return f, nil
	},
	Serialize: func(raw interface{}) (interface{}, error) {
		f, ok := numberFrom(raw)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as Float", raw)
		}
		return f, nil
	},
}

var String = &Scalar{
	Name_: "String",
	Desc:  "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	Coerce: func(input interface{}) (interface{}, error) {
		switch v := input.(type) {
		case string:
			return v, nil
		case *string:
			if v == nil {
				return nil, errors.New("string cannot be nil pointer")
			}
			return *v, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to String", input)
		}
	},
	Serialize: func(raw interface{}) (interface{}, error) {
		switch v := raw.(type) {
		case string:
			return v, nil
		case *string:
			if v == nil {
				return nil, nil
			}
			return *v, nil
		case fmt.Stringer:
			return v.String(), nil
		default:
			return nil, fmt.Errorf("cannot serialize %T as String", raw)
		}
	},
}

// ID accepts integers or strings and always serializes to a string (spec
// §4.B). A string that parses as a UUID is round-tripped through google/uuid
// into its canonical form; any other string, including a malformed
// UUID-looking one, is accepted unchanged as an opaque ID - the
// domain-stack wiring for github.com/google/uuid named in SPEC_FULL.md §10.
var ID = &Scalar{
	Name_: "ID",
	Desc:  "The `ID` scalar type represents a unique identifier, serialized as a String.",
	Coerce: func(input interface{}) (interface{}, error) {
		switch v := input.(type) {
		case string:
			if id, err := uuid.Parse(v); err == nil {
				return id.String(), nil
			}
			return v, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("ID cannot represent a fractional value: %v", v)
			}
			return fmt.Sprintf("%d", int64(v)), nil
		case int, int32, int64:
			return fmt.Sprintf("%d", v), nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to ID", input)
		}
	},
	Serialize: func(raw interface{}) (interface{}, error) {
		switch v := raw.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		case int, int32, int64, float64:
			return fmt.Sprintf("%v", v), nil
		default:
			return nil, fmt.Errorf("cannot serialize %T as ID", raw)
		}
	},
}

// Builtins is the set of scalar types every Registry is seeded with.
func Builtins() []*Scalar {
	return []*Scalar{Boolean, Int, Float, String, ID}
}

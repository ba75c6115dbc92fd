package execution

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// valueToNative converts a gqlparser literal AST node into a native Go value
// (string/float64/int64/bool/nil/[]interface{}/map[string]interface{}), or
// resolves it against vars when it is a variable reference. This is
// deliberately the only place in the package that inspects *ast.Value's
// internals, so any mistake about gqlparser's exact field/kind surface stays
// contained to one function (spec §9, "external collaborator boundary").
func valueToNative(v *ast.Value, vars map[string]interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch v.Kind {
	case ast.Variable:
		val, ok := vars[v.Raw]
		if !ok {
			return nil, nil
		}
		return val, nil

	case ast.IntValue:
		var n int64
		if _, err := fmt.Sscanf(v.Raw, "%d", &n); err != nil {
			return nil, fmt.Errorf("invalid int literal %q", v.Raw)
		}
		return n, nil

	case ast.FloatValue:
		var f float64
		if _, err := fmt.Sscanf(v.Raw, "%g", &f); err != nil {
			return nil, fmt.Errorf("invalid float literal %q", v.Raw)
		}
		return f, nil

	case ast.StringValue, ast.BlockValue:
		return v.Raw, nil

	case ast.BooleanValue:
		return v.Raw == "true", nil

	case ast.NullValue:
		return nil, nil

	case ast.EnumValue:
		return v.Raw, nil

	case ast.ListValue:
		out := make([]interface{}, len(v.Children))
		for i, child := range v.Children {
			val, err := valueToNative(child.Value, vars)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	case ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Children))
		for _, child := range v.Children {
			val, err := valueToNative(child.Value, vars)
			if err != nil {
				return nil, err
			}
			out[child.Name] = val
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value kind %v", v.Kind)
	}
}

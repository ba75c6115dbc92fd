package execution

import (
	"fmt"

	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// coerceArguments implements spec §4.E's per-field argument coercion: every
// declared argument is resolved from the field's supplied literal/variable
// value, falling back to the argument's default when absent, and rejecting
// a missing value for a non-null argument with no default. Grounded on the
// teacher's argsToJson (execution/selection.go), generalized to delegate the
// actual coercion to schema.CoerceInput rather than JSON round-tripping.
func coerceArguments(reg *schema.Registry, declared []*schema.Argument, supplied ast.ArgumentList, variables map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(declared))

	for _, arg := range declared {
		lit := supplied.ForName(arg.Name)

		var (
			value    interface{}
			hasValue bool
		)
		if lit != nil {
			v, err := valueToNative(lit.Value, variables)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
			}
			value = v
			hasValue = v != nil
		}

		if !hasValue {
			if arg.HasDefault {
				value = arg.DefaultValue
				hasValue = true
			} else if _, isNonNull := arg.Type.(*schema.NonNull); isNonNull {
				return nil, fmt.Errorf("argument %q of required type %s was not provided", arg.Name, arg.Type.String())
			} else {
				continue
			}
		}

		coerced, err := schema.CoerceInput(reg, arg.Type, value)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
		}
		out[arg.Name] = coerced
	}

	return out, nil
}

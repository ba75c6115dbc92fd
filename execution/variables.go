package execution

import (
	"fmt"

	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// coerceVariables implements spec §4.E's variable coercion algorithm: for
// every variable declared on the operation, resolve its declared type
// against the registry, apply the declared default when the caller supplied
// nothing, reject a missing value for a non-null variable with no default,
// and coerce whatever value results through schema.CoerceInput. Grounded on
// the teacher's variable-default handling in execution/selection.go
// (ApplySelectionSet), generalized into its own pass and - per Open Question
// 1 - always applying declared defaults rather than leaving them unapplied.
func coerceVariables(reg *schema.Registry, varDefs ast.VariableDefinitionList, raw map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(varDefs))

	for _, def := range varDefs {
		t, err := reg.ResolveAST(def.Type)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", def.Variable, err)
		}

		value, supplied := raw[def.Variable]
		if !supplied || value == nil {
			if def.DefaultValue != nil {
				dv, err := valueToNative(def.DefaultValue, nil)
				if err != nil {
					return nil, fmt.Errorf("variable $%s: invalid default: %w", def.Variable, err)
				}
				value = dv
				supplied = true
			} else if _, isNonNull := t.(*schema.NonNull); isNonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", def.Variable, t.String())
			} else {
				continue
			}
		}
		if !supplied {
			continue
		}

		coerced, err := schema.CoerceInput(reg, t, value)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", def.Variable, err)
		}
		out[def.Variable] = coerced
	}

	return out, nil
}

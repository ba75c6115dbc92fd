package execution

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// shouldInclude applies @skip then @include to a field/fragment's directive
// list, per spec §4.D: @skip(if: true) excludes unconditionally; otherwise
// @include(if: false) excludes; a node with neither directive is always
// included. Grounded on the teacher's shouldIncludeNode
// (execution/execute.go in the teacher tree).
func shouldInclude(directives ast.DirectiveList, variables map[string]interface{}) (bool, error) {
	if skip := directives.ForName("skip"); skip != nil {
		v, err := directiveIfArg(skip, variables)
		if err != nil {
			return false, err
		}
		if v {
			return false, nil
		}
	}
	if include := directives.ForName("include"); include != nil {
		v, err := directiveIfArg(include, variables)
		if err != nil {
			return false, err
		}
		return v, nil
	}
	return true, nil
}

func directiveIfArg(d *ast.Directive, variables map[string]interface{}) (bool, error) {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false, fmt.Errorf("@%s requires an `if` argument", d.Name)
	}
	v, err := valueToNative(arg.Value, variables)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("@%s `if` argument must be a Boolean", d.Name)
	}
	return b, nil
}

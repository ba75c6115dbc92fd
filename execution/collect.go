package execution

import (
	"fmt"

	"github.com/loamwire/graphql/schema"
	"github.com/vektah/gqlparser/v2/ast"
)

// collectedField is one response key's worth of collected ast.Fields: every
// occurrence across the selection set that merges into the same response
// key (spec §4.F.2's "fields sharing a response key are collected together
// so their sub-selections can later be merged").
type collectedField struct {
	responseKey string
	fields      []*ast.Field
}

// collectFields walks a selection set, applying @skip/@include, resolving
// fragment spreads and inline fragments, and grouping fields by response key
// in first-occurrence order (spec §4.F.2). objectType is the concrete Object
// the selection set is being collected against, used to decide whether a
// fragment's type condition applies. visitedFragments guards against cycles
// through fragment spreads.
//
// Grounded on the teacher's Flatten and detectCyclesAndUnusedFragments
// (execution/selection.go in the teacher tree): the same "merge same-key
// selections, recurse through fragments, guard against cycles" shape,
// rewritten to operate on gqlparser's *ast.SelectionSet instead of the
// teacher's hand-rolled selection AST.
func collectFields(
	doc *ast.QueryDocument,
	reg *schema.Registry,
	objectType *schema.Object,
	selectionSet ast.SelectionSet,
	variables map[string]interface{},
	visitedFragments map[string]bool,
) ([]collectedField, error) {
	var order []string
	grouped := map[string]*collectedField{}

	var walk func(sel ast.SelectionSet) error
	walk = func(sel ast.SelectionSet) error {
		for _, selection := range sel {
			switch s := selection.(type) {
			case *ast.Field:
				include, err := shouldInclude(s.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				key := s.Alias
				if key == "" {
					key = s.Name
				}
				cf, ok := grouped[key]
				if !ok {
					cf = &collectedField{responseKey: key}
					grouped[key] = cf
					order = append(order, key)
				}
				cf.fields = append(cf.fields, s)

			case *ast.FragmentSpread:
				include, err := shouldInclude(s.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				if visitedFragments[s.Name] {
					continue
				}
				frag := doc.Fragments.ForName(s.Name)
				if frag == nil {
					return fmt.Errorf("unknown fragment %q", s.Name)
				}
				if !fragmentTypeApplies(reg, objectType, frag.TypeCondition) {
					continue
				}
				// Marked only for the duration of this branch, then cleared:
				// a fragment spread used in two different branches of the
				// same selection set is legitimate and must not be treated
				// as a cycle, only spreading into itself along one path is.
				visitedFragments[s.Name] = true
				err = walk(frag.SelectionSet)
				delete(visitedFragments, s.Name)
				if err != nil {
					return err
				}

			case *ast.InlineFragment:
				include, err := shouldInclude(s.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				if s.TypeCondition != "" && !fragmentTypeApplies(reg, objectType, s.TypeCondition) {
					continue
				}
				if err := walk(s.SelectionSet); err != nil {
					return err
				}

			default:
				return fmt.Errorf("unsupported selection node %T", selection)
			}
		}
		return nil
	}

	if err := walk(selectionSet); err != nil {
		return nil, err
	}

	out := make([]collectedField, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

// fragmentTypeApplies implements does_fragment_type_apply (spec §4.F.2): a
// fragment with type condition typeCondition applies to objectType if they
// name the same Object, if objectType implements the condition as an
// interface, or if objectType is a member of the condition as a union.
func fragmentTypeApplies(reg *schema.Registry, objectType *schema.Object, typeCondition string) bool {
	if objectType.Name() == typeCondition {
		return true
	}
	if objectType.ImplementsInterface(typeCondition) {
		return true
	}
	if named, ok := reg.Get(typeCondition); ok {
		if union, ok := named.(*schema.Union); ok {
			return union.HasType(objectType.Name())
		}
	}
	return false
}

package schema

import (
	"fmt"
	"go/ast"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validateInputObject decodes a coerced InputObject map into its bound Go
// struct type and runs go-playground/validator's struct tags against it,
// surfacing a failure as part of InputCoercionError.
//
// Adapted from the teacher's schemabuilder.Convert (schemabuilder/reflect.go)
// and schemabuilder.NewValidate (schemabuilder/validator.go): Convert's
// graphql-tag field matching is reused verbatim for locating the destination
// field, and the teacher's singleton *validator.Validate is reused so the
// reflect.Type => tag cache the library keeps internally is shared across
// calls instead of rebuilt per coercion.
func validateInputObject(t *InputObject, fields map[string]interface{}) error {
	typ := reflect.TypeOf(t.GoType)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	dest := reflect.New(typ).Elem()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !ast.IsExported(sf.Name) {
			continue
		}
		name := fieldName(sf)
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		fv := dest.Field(i)
		rv := reflect.ValueOf(v)
		if rv.Type().ConvertibleTo(fv.Type()) {
			fv.Set(rv.Convert(fv.Type()))
		}
	}

	if err := structValidator().Struct(dest.Interface()); err != nil {
		return fmt.Errorf("validation failed for %s: %w", t.Name_, err)
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("graphql")
	if tag == "" || tag == "-" {
		return f.Name
	}
	return strings.Split(tag, ";")[0]
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func structValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

package structmeta

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// fieldAccessor captures a struct field's index path. Get dereferences
// pointers and returns nil for nil ones; Set requires a non-nil pointer to
// the struct and allocates pointer fields as needed.
func fieldAccessor(index []int) metadata.Accessor {
	path := append([]int(nil), index...)

	return metadata.Accessor{
		Get: func(instance any) any {
			v := reflect.ValueOf(instance)
			for v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return nil
				}
				v = v.Elem()
			}
			if v.Kind() != reflect.Struct {
				return nil
			}
			fv, err := v.FieldByIndexErr(path)
			if err != nil {
				return nil
			}
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return nil
				}
				fv = fv.Elem()
			}
			return fv.Interface()
		},
		Set: func(instance any, value any) error {
			v := reflect.ValueOf(instance)
			if v.Kind() != reflect.Pointer || v.IsNil() {
				return fmt.Errorf("structmeta: set requires a non-nil struct pointer, got %T", instance)
			}
			v = v.Elem()
			if v.Kind() != reflect.Struct {
				return fmt.Errorf("structmeta: set requires a struct pointer, got %T", instance)
			}
			fv, err := v.FieldByIndexErr(path)
			if err != nil {
				return fmt.Errorf("structmeta: %w", err)
			}
			return assign(fv, value)
		},
	}
}

func assign(fv reflect.Value, value any) error {
	if !fv.CanSet() {
		return fmt.Errorf("structmeta: field of type %s is not settable", fv.Type())
	}
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		pv := reflect.New(fv.Type().Elem())
		if err := assign(pv.Elem(), value); err != nil {
			return err
		}
		fv.Set(pv)
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return nil
	}
	if numericKind(rv.Kind()) && numericKind(fv.Kind()) && rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
		return nil
	}
	return fmt.Errorf("structmeta: cannot assign %T to field of type %s", value, fv.Type())
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

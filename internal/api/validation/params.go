package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
)

type lookupFunc func(name string) ([]string, bool)

// Numeric parameters are plain decimal: no radix prefixes, no digit
// separators, no special float values.
var (
	decimalInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalNumber  = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

	errNotDecimal = errors.New("not a decimal number")
)

// decodeParams coerces textual parameters into target, a pointer to a
// struct, and then checks its constraints.
func decodeParams(target any, part string, lookup lookupFunc) []contract.FieldError {
	rv := reflect.ValueOf(target).Elem()
	if rv.Kind() != reflect.Struct {
		return nil
	}

	errs := coerceFields(rv, part, lookup)

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[strings.Join(e.Path, ".")] = true
	}

	return append(errs, checkStruct(target, part, failed)...)
}

func coerceFields(rv reflect.Value, part string, lookup lookupFunc) []contract.FieldError {
	var errs []contract.FieldError
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)

		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			errs = append(errs, coerceFields(fv, part, lookup)...)
			continue
		}

		name, ok := tagName(sf, part)
		if !ok {
			continue
		}

		values, present := lookup(name)
		if !present || len(values) == 0 {
			def, hasDefault := sf.Tag.Lookup("default")
			if !hasDefault {
				continue
			}
			values = []string{def}
		}

		if err := setValue(fv, values); err != nil {
			errs = append(errs, contract.NewFieldError(
				contract.CodeInvalidType,
				"expected "+describeType(sf.Type),
				part, name,
			))
		}
	}

	return errs
}

func setValue(fv reflect.Value, values []string) error {
	switch fv.Kind() {
	case reflect.Pointer:
		ptr := reflect.New(fv.Type().Elem())
		if err := setValue(ptr.Elem(), values); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	case reflect.Slice:
		out := reflect.MakeSlice(fv.Type(), 0, len(values))
		for _, v := range values {
			elem := reflect.New(fv.Type().Elem()).Elem()
			if err := setScalar(elem, v); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		fv.Set(out)
		return nil
	default:
		return setScalar(fv, values[0])
	}
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !decimalInteger.MatchString(s) {
			return fmt.Errorf("%q: %w", s, errNotDecimal)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		if v.OverflowInt(n) {
			return fmt.Errorf("%d overflows %s", n, v.Type())
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !decimalInteger.MatchString(s) || strings.HasPrefix(s, "-") {
			return fmt.Errorf("%q: %w", s, errNotDecimal)
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
		if err != nil {
			return err
		}
		if v.OverflowUint(n) {
			return fmt.Errorf("%d overflows %s", n, v.Type())
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if !decimalNumber.MatchString(s) {
			return fmt.Errorf("%q: %w", s, errNotDecimal)
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported parameter type %s", v.Type())
	}
	return nil
}

func describeType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return describeType(t.Elem())
	case reflect.Slice:
		return "list of " + describeType(t.Elem())
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "string"
	}
}

// tagName returns the name a struct field carries under tag.
func tagName(sf reflect.StructField, tag string) (string, bool) {
	v, ok := sf.Tag.Lookup(tag)
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(v, ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

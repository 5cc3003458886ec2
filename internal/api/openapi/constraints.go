package openapi

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/swaggest/jsonschema-go"
)

// validateConstraints copies go-playground validate rules into the
// reflected property schemas.
func validateConstraints(params jsonschema.InterceptPropParams) error {
	if !params.Processed || params.PropertySchema == nil {
		return nil
	}

	tag, ok := params.Field.Tag.Lookup("validate")
	if !ok || tag == "" || tag == "-" {
		return nil
	}

	kind := params.Field.Type.Kind()
	if kind == reflect.Pointer {
		kind = params.Field.Type.Elem().Kind()
	}

	schema := params.PropertySchema
	for _, rule := range strings.Split(tag, ",") {
		name, param, _ := strings.Cut(rule, "=")
		if name == "dive" {
			break
		}

		switch name {
		case "required":
			if params.ParentSchema != nil && !contains(params.ParentSchema.Required, params.Name) {
				params.ParentSchema.Required = append(params.ParentSchema.Required, params.Name)
			}
		case "min", "gte":
			setBound(schema, kind, param, true, false)
		case "max", "lte":
			setBound(schema, kind, param, false, false)
		case "gt":
			setBound(schema, kind, param, true, true)
		case "lt":
			setBound(schema, kind, param, false, true)
		case "len":
			setBound(schema, kind, param, true, false)
			setBound(schema, kind, param, false, false)
		case "oneof":
			schema.WithEnum(enumValues(kind, param)...)
		case "email":
			schema.WithFormat("email")
		case "url", "uri":
			schema.WithFormat("uri")
		case "uuid", "uuid4":
			schema.WithFormat("uuid")
		}
	}
	return nil
}

func setBound(schema *jsonschema.Schema, kind reflect.Kind, param string, lower, exclusive bool) {
	switch kind {
	case reflect.String:
		n, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return
		}
		if exclusive {
			n = bump(n, lower)
		}
		if lower {
			schema.WithMinLength(n)
		} else {
			schema.WithMaxLength(n)
		}
	case reflect.Slice, reflect.Array, reflect.Map:
		n, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return
		}
		if exclusive {
			n = bump(n, lower)
		}
		if lower {
			schema.WithMinItems(n)
		} else {
			schema.WithMaxItems(n)
		}
	default:
		f, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return
		}
		switch {
		case lower && exclusive:
			schema.WithExclusiveMinimum(f)
		case lower:
			schema.WithMinimum(f)
		case exclusive:
			schema.WithExclusiveMaximum(f)
		default:
			schema.WithMaximum(f)
		}
	}
}

// bump turns an exclusive length bound into an inclusive one.
func bump(n int64, lower bool) int64 {
	if lower {
		return n + 1
	}
	return n - 1
}

func enumValues(kind reflect.Kind, param string) []interface{} {
	fields := strings.Fields(param)
	values := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		switch kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n, err := cast.ToInt64E(f); err == nil {
				values = append(values, n)
				continue
			}
		}
		values = append(values, f)
	}
	return values
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
)

// embeddedSegment names anonymous struct fields, whose own fields are
// promoted and must not appear in error paths.
const embeddedSegment = "-"

// validate is shared by every contract; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
}

// Validator exposes the shared instance so other packages can register
// custom validations at startup.
func Validator() *validator.Validate {
	return validate
}

func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"json", PartPath, PartQuery} {
		if name, ok := tagName(sf, tag); ok {
			return name
		}
	}
	if sf.Anonymous {
		return embeddedSegment
	}
	return sf.Name
}

// checkStruct runs the validate tags of target. Errors on paths listed in
// skip were already reported by decoding and are dropped.
func checkStruct(target any, part string, skip map[string]bool) []contract.FieldError {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []contract.FieldError{
			contract.NewFieldError(contract.CodeInvalidValue, "invalid value", part),
		}
	}

	out := make([]contract.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := append([]string{part}, namespaceSegments(fe.Namespace())...)
		if skip[strings.Join(path, ".")] {
			continue
		}
		out = append(out, contract.FieldError{
			Path:    path,
			Code:    codeForTag(fe.Tag()),
			Message: messageFor(fe),
		})
	}
	return out
}

// namespaceSegments splits "Body.schedules[0].roomId" into
// ["schedules", "0", "roomId"], dropping the root struct name.
func namespaceSegments(ns string) []string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return nil
	}

	var segments []string
	for _, part := range strings.Split(rest, ".") {
		name, indexes, _ := strings.Cut(part, "[")
		if name != "" && name != embeddedSegment {
			segments = append(segments, name)
		}
		for indexes != "" {
			idx, tail, _ := strings.Cut(indexes, "]")
			segments = append(segments, idx)
			indexes = strings.TrimPrefix(tail, "[")
		}
	}
	return segments
}

func codeForTag(tag string) contract.ErrorCode {
	switch {
	case strings.HasPrefix(tag, "required"):
		return contract.CodeRequired
	case tag == "min" || tag == "gte" || tag == "gt":
		return contract.CodeTooSmall
	case tag == "max" || tag == "lte" || tag == "lt":
		return contract.CodeTooBig
	case tag == "oneof":
		return contract.CodeInvalidEnumValue
	case isFormatTag(tag):
		return contract.CodeInvalidFormat
	default:
		return contract.CodeInvalidValue
	}
}

func isFormatTag(tag string) bool {
	switch tag {
	case "email", "url", "uri", "uuid", "uuid4", "datetime", "numeric", "number",
		"alpha", "alphanum", "alphanumunicode", "hostname", "e164", "json", "lowercase", "uppercase":
		return true
	}
	return false
}

// messageFor builds the human readable message of a constraint failure.
func messageFor(fe validator.FieldError) string {
	kind := fe.Kind()
	param := fe.Param()

	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "required field"
	case "email":
		return "invalid email format"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		return "must match the format " + param
	case "min", "gte":
		return boundMessage(kind, "at least", param)
	case "max", "lte":
		return boundMessage(kind, "at most", param)
	case "gt":
		return boundMessage(kind, "more than", param)
	case "lt":
		return boundMessage(kind, "less than", param)
	case "len":
		return boundMessage(kind, "exactly", param)
	default:
		if isFormatTag(fe.Tag()) {
			return "invalid " + fe.Tag() + " format"
		}
		return fmt.Sprintf("failed the '%s' constraint", fe.Tag())
	}
}

func boundMessage(kind reflect.Kind, relation, param string) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("must contain %s %s characters", relation, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", relation, param)
	default:
		return fmt.Sprintf("must be %s %s", relation, param)
	}
}

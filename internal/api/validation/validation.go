package validation

import (
	"net/url"
	"reflect"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
)

// Input part names, used as the first segment of every FieldError path.
const (
	PartPath  = "path"
	PartQuery = "query"
	PartBody  = "body"
)

// Raw is the untyped input of a request.
type Raw struct {
	Path  map[string]string
	Query url.Values
	Body  []byte
}

// Validate checks raw against the P, Q and B schemas.
//
// On success it returns the typed input and a nil report. On failure it
// returns the zero input and a report listing the errors of every declared
// part, in path, query, body order.
func Validate[P, Q, B any](raw Raw) (contract.Input[P, Q, B], *contract.Report) {
	var in contract.Input[P, Q, B]
	report := contract.NewReport()

	if contract.Declared[P]() {
		report.Add(decodeParams(&in.Path, PartPath, func(name string) ([]string, bool) {
			v, ok := raw.Path[name]
			if !ok {
				return nil, false
			}
			return []string{v}, true
		})...)
	}

	if contract.Declared[Q]() {
		report.Add(decodeParams(&in.Query, PartQuery, func(name string) ([]string, bool) {
			v, ok := raw.Query[name]
			return v, ok
		})...)
	}

	if contract.Declared[B]() {
		report.Add(decodeBody(&in.Body, raw.Body)...)
	}

	if !report.Empty() {
		return contract.Input[P, Q, B]{}, report
	}
	return in, nil
}

// CheckSchema reports whether T can be used as a path or query schema.
func CheckSchema[T any]() error {
	if !contract.Declared[T]() {
		return nil
	}
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return &SchemaError{Type: t}
	}
	return nil
}

// SchemaError reports a parameter schema that is not a struct.
type SchemaError struct {
	Type reflect.Type
}

func (e *SchemaError) Error() string {
	return "validation: parameter schema " + e.Type.String() + " must be a struct"
}

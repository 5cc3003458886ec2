package openapi

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
)

// BearerSecurity is the name of the bearer token security scheme.
const BearerSecurity = "bearerAuth"

// Info is the info block of the document.
type Info struct {
	Title       string
	Version     string
	Description string
}

// SecuredFunc reports whether an operation requires a bearer token.
type SecuredFunc func(method, pattern string) bool

// NewDocument renders ops as an OpenAPI 3.1 JSON document. Operations for
// which secured returns true carry the bearer requirement and a 401
// response.
func NewDocument(info Info, ops []contract.Operation, secured SecuredFunc) ([]byte, error) {
	r := openapi31.NewReflector()
	r.Spec.Info.WithTitle(info.Title).WithVersion(info.Version)
	if info.Description != "" {
		r.Spec.Info.WithDescription(info.Description)
	}
	r.Spec.SetHTTPBearerTokenSecurity(BearerSecurity, "JWT", "Access token issued by the API")

	js := r.JSONSchemaReflector()
	js.DefaultOptions = append(js.DefaultOptions, jsonschema.InterceptProp(validateConstraints))
	js.InterceptDefName(definitionName)

	for _, op := range ops {
		if err := addOperation(r, Describe(op), secured != nil && secured(op.Method, op.Pattern)); err != nil {
			return nil, err
		}
	}

	doc, err := r.Spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return doc, nil
}

func addOperation(r *openapi31.Reflector, d Description, secured bool) error {
	oc, err := r.NewOperationContext(d.Method, d.Pattern)
	if err != nil {
		return fmt.Errorf("operation %s %s: %w", d.Method, d.Pattern, err)
	}

	if d.OperationID != "" {
		oc.SetID(d.OperationID)
	}
	if d.Summary != "" {
		oc.SetSummary(d.Summary)
	}
	if len(d.Tags) > 0 {
		oc.SetTags(d.Tags...)
	}

	for _, part := range []reflect.Type{d.Path, d.Query} {
		if part != nil {
			oc.AddReqStructure(prototype(part))
		}
	}
	if d.Body != nil {
		oc.AddReqStructure(prototype(d.Body), openapi.WithContentType("application/json"))
	}

	if secured {
		if _, declared := d.Responses[http.StatusUnauthorized]; !declared {
			d.Responses[http.StatusUnauthorized] = ResponseDescription{
				Schema:      reflect.TypeFor[shared.ErrorResponse](),
				Description: DefaultDescription(http.StatusUnauthorized),
			}
		}
		oc.AddSecurity(BearerSecurity)
	}

	for _, status := range d.Statuses() {
		resp := d.Responses[status]
		var body interface{}
		if resp.Schema != nil {
			body = prototype(resp.Schema)
		}
		oc.AddRespStructure(body, openapi.WithHTTPStatus(status), func(cu *openapi.ContentUnit) {
			cu.Description = resp.Description
		})
	}

	if err := r.AddOperation(oc); err != nil {
		return fmt.Errorf("operation %s %s: %w", d.Method, d.Pattern, err)
	}
	return nil
}

func prototype(t reflect.Type) interface{} {
	return reflect.New(t).Elem().Interface()
}

// definitionName keeps generic instantiations such as
// Envelope[github.com/.../domain.Course] readable.
func definitionName(_ reflect.Type, defaultDefName string) string {
	if !strings.ContainsAny(defaultDefName, "[]/.*") {
		return defaultDefName
	}

	var b strings.Builder
	upper := true
	for _, r := range defaultDefName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if upper {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
			upper = false
			continue
		}
		upper = true
	}
	return b.String()
}

package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
)

// decodeBody decodes a JSON body into target and checks its constraints.
// Syntax errors stop at a single error on ["body"]; type mismatches are
// reported per field and the remaining fields are still checked.
func decodeBody(target any, body []byte) []contract.FieldError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []contract.FieldError{
			contract.NewFieldError(contract.CodeRequired, "request body is required", PartBody),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var errs []contract.FieldError

	if err := dec.Decode(target); err != nil {
		fe, recoverable := jsonFieldError(err)
		if !recoverable {
			return []contract.FieldError{fe}
		}
		errs = append(errs, fe)
	} else if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return []contract.FieldError{
			contract.NewFieldError(contract.CodeInvalidJSON, "unexpected data after JSON value", PartBody),
		}
	}

	if reflect.ValueOf(target).Elem().Kind() != reflect.Struct {
		return errs
	}

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[strings.Join(e.Path, ".")] = true
	}
	return append(errs, checkStruct(target, PartBody, failed)...)
}

// jsonFieldError converts a decoding error. The second result reports
// whether the target was still populated and can be validated further.
func jsonFieldError(err error) (contract.FieldError, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := []string{PartBody}
		if typeErr.Field != "" {
			path = append(path, strings.Split(typeErr.Field, ".")...)
		}
		return contract.NewFieldError(
			contract.CodeInvalidType,
			fmt.Sprintf("expected %s, received %s", describeType(typeErr.Type), typeErr.Value),
			path...,
		), true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return contract.NewFieldError(
			contract.CodeInvalidJSON,
			fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset),
			PartBody,
		), false
	}

	return contract.NewFieldError(contract.CodeInvalidJSON, "malformed JSON", PartBody), false
}

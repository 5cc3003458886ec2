// Package endpoint binds contracts to business functions and mounts them on
// a chi router.
//
// A bound handler validates the request against its contract, calls the
// business function only with valid input and writes the declared response
// it returns. Anything outside the contract becomes a logged 500.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/validation"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
)

var (
	// ErrMissingStatus is logged when a business function returns a Result
	// without a status.
	ErrMissingStatus = errors.New("result has no status")

	// ErrUndeclaredStatus is logged when a business function returns a
	// status its contract does not declare.
	ErrUndeclaredStatus = errors.New("result status not declared by contract")
)

// Func is the business function of an operation. It receives only
// validated input.
type Func[P, Q, B any] func(ctx context.Context, in contract.Input[P, Q, B]) (contract.Result, error)

// Bind returns the HTTP handler for c. It panics when a path or query
// schema is not a struct.
func Bind[P, Q, B any](c contract.Contract[P, Q, B], fn Func[P, Q, B]) http.HandlerFunc {
	if err := errors.Join(validation.CheckSchema[P](), validation.CheckSchema[Q]()); err != nil {
		// ALLOW-PANIC: contracts are bound at startup
		panic(fmt.Sprintf("endpoint: cannot bind %s %s: %v", c.Method, c.Pattern, err))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.WithRequestURL(r.Context(), r.URL)

		raw := validation.Raw{
			Path:  shared.PathParams(r),
			Query: r.URL.Query(),
		}

		var bodyErr *contract.FieldError
		if contract.Declared[B]() {
			body, err := shared.ReadBody(w, r, 0)
			switch {
			case errors.Is(err, shared.ErrBodyTooLarge):
				fe := contract.NewFieldError(contract.CodeTooBig, "request body too large", validation.PartBody)
				bodyErr = &fe
			case err != nil:
				fe := contract.NewFieldError(contract.CodeInvalidJSON, "request body could not be read", validation.PartBody)
				bodyErr = &fe
			default:
				raw.Body = body
			}
		}

		var (
			in     contract.Input[P, Q, B]
			report *contract.Report
		)
		if bodyErr != nil {
			// The body is unusable; the other parts are still reported.
			_, partial := validation.Validate[P, Q, contract.Empty](raw)
			report = contract.NewReport()
			if partial != nil {
				report.Add(partial.Errors...)
			}
			report.Add(*bodyErr)
		} else {
			in, report = validation.Validate[P, Q, B](raw)
		}

		if report != nil {
			logger.FromContextOrDefault(ctx).Debug("request failed validation",
				"operation_id", c.OperationID,
				"errors", len(report.Errors))
			shared.RespondWithJSON(w, r, http.StatusBadRequest, report)
			return
		}

		result, err := fn(ctx, in)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.InternalErrorMessage,
				fmt.Errorf("%s: %w", c.OperationID, err))
			return
		}

		writeResult(w, r, c.OperationID, c.Output, result)
	}
}

// writeResult writes the declared response selected by result.Status.
func writeResult(w http.ResponseWriter, r *http.Request, operationID string, out contract.Output, result contract.Result) {
	if result.Status == 0 {
		contractViolation(w, r, operationID, ErrMissingStatus)
		return
	}

	resp, ok := out.Lookup(result.Status)
	if !ok && result.Status != http.StatusBadRequest {
		contractViolation(w, r, operationID, fmt.Errorf("%w: %d", ErrUndeclaredStatus, result.Status))
		return
	}

	if (ok && resp.Schema == nil) || result.Body == nil {
		shared.RespondWithStatus(w, result.Status)
		return
	}
	shared.RespondWithJSON(w, r, result.Status, result.Body)
}

// contractViolation answers a result outside the contract. It is always a
// programming error, so it is logged at ERROR with the operation.
func contractViolation(w http.ResponseWriter, r *http.Request, operationID string, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.InternalErrorMessage,
		fmt.Errorf("contract violation in %s: %w", operationID, err))
}

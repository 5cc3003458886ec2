package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/access"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/validation"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// IDPath is the path schema of every item route.
type IDPath struct {
	ID int64 `path:"id" validate:"min=1" description:"Resource identifier."`
}

func byID(id int64) map[string]any {
	return map[string]any{"id": id}
}

// Standard outputs of the five CRUD operations of a resource whose item
// schema is T.
func listOutput[T any]() contract.Output {
	return contract.NewOutput().
		OK(new(pagination.Envelope[T]), "A page of results.").
		BadRequest("Invalid query parameters.").
		MustBuild()
}

func getOutput[T any]() contract.Output {
	return contract.NewOutput().
		OK(new(T), "The requested resource.").
		BadRequest("Invalid path parameters.").
		NotFound("No resource has this identifier.").
		MustBuild()
}

func createOutput[T any]() contract.Output {
	return contract.NewOutput().
		Created(new(T), "The created resource.").
		BadRequest("Invalid body or broken business rule.").
		MustBuild()
}

func updateOutput[T any]() contract.Output {
	return contract.NewOutput().
		OK(new(T), "The updated resource.").
		BadRequest("Invalid input or broken business rule.").
		NotFound("No resource has this identifier.").
		MustBuild()
}

func deleteOutput() contract.Output {
	return contract.NewOutput().
		NoContent("The resource was deleted.").
		BadRequest("The resource is still referenced.").
		NotFound("No resource has this identifier.").
		MustBuild()
}

// publicReads makes the collection and item GET routes under base public.
func publicReads(base string, nested ...string) *access.Registry {
	reg := access.NewRegistry().
		AddException(http.MethodGet, base).
		AddException(http.MethodGet, base+"/{id}")
	for _, sub := range nested {
		reg.AddException(http.MethodGet, base+"/{id}/"+sub)
	}
	return reg
}

// notFound builds the 404 result for noun id.
func notFound(noun string, id int64) contract.Result {
	return contract.NotFound(fmt.Sprintf("%s %d not found", noun, id))
}

// listLinks builds pagination links against the URL being served.
func listLinks(ctx context.Context) pagination.LinkFunc {
	u := shared.RequestURLFromContext(ctx)
	return pagination.Links(u.Path, u.Query())
}

// listPage loads the page of repo selected by q and page and wraps it in
// the list envelope.
func listPage[T any](
	ctx context.Context,
	repo store.Repository[T],
	q store.Query,
	page pagination.Query,
) (contract.Result, error) {
	total, err := repo.Count(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	q.Skip, q.Take = page.Skip(), page.Take()
	items, err := repo.FindMany(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	env, err := pagination.Paginate(items, total, page, listLinks(ctx))
	if err != nil {
		return contract.Result{}, err
	}
	return contract.OK(env), nil
}

// getOne loads the row with id or answers 404.
func getOne[T any](ctx context.Context, repo store.Repository[T], noun string, id int64) (contract.Result, error) {
	entity, err := repo.FindUnique(ctx, byID(id))
	if errors.Is(err, store.ErrNotFound) {
		return notFound(noun, id), nil
	}
	if err != nil {
		return contract.Result{}, err
	}
	return contract.OK(entity), nil
}

// deleteOne removes the row with id. Rows still referenced elsewhere are
// reported as HAS_DEPENDENTS on the id.
func deleteOne[T any](ctx context.Context, repo store.Repository[T], noun string, id int64) (contract.Result, error) {
	err := repo.Delete(ctx, byID(id))
	if errors.Is(err, store.ErrNotFound) {
		return notFound(noun, id), nil
	}
	if errors.Is(err, store.ErrHasDependents) {
		return contract.BadRequest(contract.NewReport(contract.NewFieldError(
			contract.CodeHasDependents,
			fmt.Sprintf("%s %d is still referenced by other resources", noun, id),
			validation.PartPath, "id",
		))), nil
	}
	if err != nil {
		return contract.Result{}, err
	}
	logger.FromContextOrDefault(ctx).Debug("resource deleted", "resource", noun, "id", id)
	return contract.NoContent(), nil
}

// exists reports whether repo has a row with id.
func exists[T any](ctx context.Context, repo store.Repository[T], id int64) (bool, error) {
	_, err := repo.FindUnique(ctx, byID(id))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// reference is a foreign key carried by a request body.
type reference struct {
	field string
	noun  string
	id    int64
	check func(ctx context.Context, id int64) (bool, error)
}

func ref[T any](repo store.Repository[T], field, noun string, id int64) reference {
	return reference{
		field: field,
		noun:  noun,
		id:    id,
		check: func(ctx context.Context, id int64) (bool, error) { return exists(ctx, repo, id) },
	}
}

// checkReferences reports every reference whose target does not exist.
// Extra path segments locate references nested inside the body.
func checkReferences(ctx context.Context, refs ...reference) (*contract.Report, error) {
	report := contract.NewReport()
	for _, r := range refs {
		ok, err := r.check(ctx, r.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			report.Add(contract.NewFieldError(
				contract.CodeReferenceNotFound,
				fmt.Sprintf("%s %d does not exist", r.noun, r.id),
				append([]string{validation.PartBody}, strings.Split(r.field, ".")...)...,
			))
		}
	}
	if report.Empty() {
		return nil, nil
	}
	return report, nil
}

// writeFailure maps store errors raised by a create or update onto the
// body fields they concern. uniqueFields name the body fields covered by
// the resource's uniqueness rule. Unmapped errors are returned as is.
func writeFailure(err error, noun string, uniqueFields ...string) (contract.Result, error) {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		report := contract.NewReport()
		if len(uniqueFields) == 0 {
			uniqueFields = []string{""}
		}
		for _, f := range uniqueFields {
			path := []string{validation.PartBody}
			if f != "" {
				path = append(path, f)
			}
			report.Add(contract.NewFieldError(contract.CodeAlreadyExists,
				fmt.Sprintf("a %s with this %s already exists", noun, describeFields(uniqueFields)), path...))
		}
		return contract.BadRequest(report), nil
	case errors.Is(err, store.ErrReferenceNotFound):
		return contract.BadRequest(contract.NewReport(contract.NewFieldError(
			contract.CodeReferenceNotFound, "a referenced resource does not exist", validation.PartBody))), nil
	case errors.Is(err, store.ErrInvalidEntity):
		return contract.BadRequest(contract.NewReport(contract.NewFieldError(
			contract.CodeInvalidValue, fmt.Sprintf("the %s violates a data constraint", noun), validation.PartBody))), nil
	}
	return contract.Result{}, err
}

func describeFields(fields []string) string {
	switch len(fields) {
	case 0:
		return "value"
	case 1:
		if fields[0] == "" {
			return "value"
		}
		return fields[0]
	}
	out := fields[0]
	for _, f := range fields[1:len(fields)-1] {
		out += ", " + f
	}
	return out + " and " + fields[len(fields)-1]
}

// updateFailure is writeFailure for updates, where the row may vanish
// between the existence check and the write.
func updateFailure(err error, noun string, id int64, uniqueFields ...string) (contract.Result, error) {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(noun, id), nil
	}
	return writeFailure(err, noun, uniqueFields...)
}

// badRequestOr answers report as a 400 unless err is set.
func badRequestOr(report *contract.Report, err error) (contract.Result, error) {
	if err != nil {
		return contract.Result{}, err
	}
	return contract.BadRequest(report), nil
}

package api

import (
	"context"
	"net/http"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// InstituteBody is the request body of institute writes.
type InstituteBody struct {
	Code string `json:"code" validate:"required,max=16" description:"Unique short code, such as IC."`
	Name string `json:"name" validate:"required,max=200"`
}

var instituteTags = []string{"Institutes"}

var (
	listInstitutes = contract.Contract[contract.Empty, pagination.Query, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/institutes",
		OperationID: "listInstitutes",
		Summary:     "List institutes",
		Tags:        instituteTags,
		Output:      listOutput[domain.Institute](),
	}
	getInstitute = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/institutes/{id}",
		OperationID: "getInstitute",
		Summary:     "Get an institute",
		Tags:        instituteTags,
		Output:      getOutput[domain.Institute](),
	}
	listInstituteCourses = contract.Contract[IDPath, pagination.Query, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/institutes/{id}/courses",
		OperationID: "listInstituteCourses",
		Summary:     "List the courses of an institute",
		Tags:        instituteTags,
		Output: contract.NewOutput().
			OK(new(pagination.Envelope[domain.Course]), "A page of the institute's courses.").
			BadRequest("Invalid path or query parameters.").
			NotFound("No institute has this identifier.").
			MustBuild(),
	}
	createInstitute = contract.Contract[contract.Empty, contract.Empty, InstituteBody]{
		Method:      http.MethodPost,
		Pattern:     "/institutes",
		OperationID: "createInstitute",
		Summary:     "Create an institute",
		Tags:        instituteTags,
		Output:      createOutput[domain.Institute](),
	}
	updateInstitute = contract.Contract[IDPath, contract.Empty, InstituteBody]{
		Method:      http.MethodPut,
		Pattern:     "/institutes/{id}",
		OperationID: "updateInstitute",
		Summary:     "Replace an institute",
		Tags:        instituteTags,
		Output:      updateOutput[domain.Institute](),
	}
	deleteInstitute = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/institutes/{id}",
		OperationID: "deleteInstitute",
		Summary:     "Delete an institute without courses or professors",
		Tags:        instituteTags,
		Output:      deleteOutput(),
	}
)

// InstituteHandler serves the institutes resource.
type InstituteHandler struct {
	institutes store.Repository[domain.Institute]
	courses    store.Repository[domain.Course]
}

// NewInstituteHandler creates a new InstituteHandler.
func NewInstituteHandler(
	institutes store.Repository[domain.Institute],
	courses store.Repository[domain.Course],
) *InstituteHandler {
	return &InstituteHandler{institutes: institutes, courses: courses}
}

// Module returns the bound institute routes.
func (h *InstituteHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "institutes",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listInstitutes, h.list),
			endpoint.NewRoute(getInstitute, h.get),
			endpoint.NewRoute(listInstituteCourses, h.listCourses),
			endpoint.NewRoute(createInstitute, h.create),
			endpoint.NewRoute(updateInstitute, h.update),
			endpoint.NewRoute(deleteInstitute, h.delete),
		},
		Exceptions: publicReads("/institutes", "courses"),
	}
}

func (h *InstituteHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, pagination.Query, contract.Empty],
) (contract.Result, error) {
	return listPage(ctx, h.institutes, store.Query{Order: "code"}, in.Query)
}

func (h *InstituteHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.institutes, "institute", in.Path.ID)
}

func (h *InstituteHandler) listCourses(
	ctx context.Context,
	in contract.Input[IDPath, pagination.Query, contract.Empty],
) (contract.Result, error) {
	ok, err := exists(ctx, h.institutes, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("institute", in.Path.ID), nil
	}
	q := store.Query{Where: map[string]any{"institute_id": in.Path.ID}, Order: "code"}
	return listPage(ctx, h.courses, q, in.Query)
}

func (h *InstituteHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, InstituteBody],
) (contract.Result, error) {
	institute := &domain.Institute{Code: in.Body.Code, Name: in.Body.Name}
	if err := h.institutes.Create(ctx, institute); err != nil {
		return writeFailure(err, "institute", "code")
	}
	return contract.Created(institute), nil
}

func (h *InstituteHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, InstituteBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.institutes, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("institute", in.Path.ID), nil
	}

	institute := &domain.Institute{ID: in.Path.ID, Code: in.Body.Code, Name: in.Body.Name}
	if err := h.institutes.Update(ctx, institute); err != nil {
		return updateFailure(err, "institute", in.Path.ID, "code")
	}
	return contract.OK(institute), nil
}

func (h *InstituteHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.institutes, "institute", in.Path.ID)
}

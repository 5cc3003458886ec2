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

// SpecializationBody is the request body of specialization writes.
type SpecializationBody struct {
	Code      string `json:"code" validate:"required,max=16" description:"Code, unique within the program and catalog."`
	Name      string `json:"name" validate:"required,max=200"`
	ProgramID int64  `json:"programId" validate:"required,min=1"`
	CatalogID int64  `json:"catalogId" validate:"required,min=1"`
}

// SpecializationListQuery filters the specialization collection.
type SpecializationListQuery struct {
	pagination.Query
	ProgramID *int64 `query:"programId" validate:"omitempty,min=1"`
	CatalogID *int64 `query:"catalogId" validate:"omitempty,min=1"`
}

var specializationTags = []string{"Specializations"}

var (
	listSpecializations = contract.Contract[contract.Empty, SpecializationListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/specializations",
		OperationID: "listSpecializations",
		Summary:     "List specializations",
		Tags:        specializationTags,
		Output:      listOutput[domain.Specialization](),
	}
	getSpecialization = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/specializations/{id}",
		OperationID: "getSpecialization",
		Summary:     "Get a specialization",
		Tags:        specializationTags,
		Output:      getOutput[domain.Specialization](),
	}
	createSpecialization = contract.Contract[contract.Empty, contract.Empty, SpecializationBody]{
		Method:      http.MethodPost,
		Pattern:     "/specializations",
		OperationID: "createSpecialization",
		Summary:     "Create a specialization",
		Tags:        specializationTags,
		Output:      createOutput[domain.Specialization](),
	}
	updateSpecialization = contract.Contract[IDPath, contract.Empty, SpecializationBody]{
		Method:      http.MethodPut,
		Pattern:     "/specializations/{id}",
		OperationID: "updateSpecialization",
		Summary:     "Replace a specialization",
		Tags:        specializationTags,
		Output:      updateOutput[domain.Specialization](),
	}
	deleteSpecialization = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/specializations/{id}",
		OperationID: "deleteSpecialization",
		Summary:     "Delete an unused specialization",
		Tags:        specializationTags,
		Output:      deleteOutput(),
	}
)

// SpecializationHandler serves the specializations resource.
type SpecializationHandler struct {
	specializations store.Repository[domain.Specialization]
	programs        store.Repository[domain.Program]
	catalogs        store.Repository[domain.Catalog]
}

// NewSpecializationHandler creates a new SpecializationHandler.
func NewSpecializationHandler(
	specializations store.Repository[domain.Specialization],
	programs store.Repository[domain.Program],
	catalogs store.Repository[domain.Catalog],
) *SpecializationHandler {
	return &SpecializationHandler{specializations: specializations, programs: programs, catalogs: catalogs}
}

// Module returns the bound specialization routes.
func (h *SpecializationHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "specializations",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listSpecializations, h.list),
			endpoint.NewRoute(getSpecialization, h.get),
			endpoint.NewRoute(createSpecialization, h.create),
			endpoint.NewRoute(updateSpecialization, h.update),
			endpoint.NewRoute(deleteSpecialization, h.delete),
		},
		Exceptions: publicReads("/specializations"),
	}
}

var specializationUnique = []string{"programId", "catalogId", "code"}

func (h *SpecializationHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, SpecializationListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Where: map[string]any{}, Order: "code"}
	if in.Query.ProgramID != nil {
		q.Where["program_id"] = *in.Query.ProgramID
	}
	if in.Query.CatalogID != nil {
		q.Where["catalog_id"] = *in.Query.CatalogID
	}
	return listPage(ctx, h.specializations, q, in.Query.Query)
}

func (h *SpecializationHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.specializations, "specialization", in.Path.ID)
}

func (h *SpecializationHandler) checkRefs(ctx context.Context, b SpecializationBody) (*contract.Report, error) {
	return checkReferences(ctx,
		ref(h.programs, "programId", "program", b.ProgramID),
		ref(h.catalogs, "catalogId", "catalog", b.CatalogID),
	)
}

func (h *SpecializationHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, SpecializationBody],
) (contract.Result, error) {
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	spec := specializationFromBody(0, in.Body)
	if err := h.specializations.Create(ctx, spec); err != nil {
		return writeFailure(err, "specialization", specializationUnique...)
	}
	return contract.Created(spec), nil
}

func (h *SpecializationHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, SpecializationBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.specializations, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("specialization", in.Path.ID), nil
	}
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	spec := specializationFromBody(in.Path.ID, in.Body)
	if err := h.specializations.Update(ctx, spec); err != nil {
		return updateFailure(err, "specialization", in.Path.ID, specializationUnique...)
	}
	return contract.OK(spec), nil
}

func (h *SpecializationHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.specializations, "specialization", in.Path.ID)
}

func specializationFromBody(id int64, b SpecializationBody) *domain.Specialization {
	return &domain.Specialization{
		ID:        id,
		Code:      b.Code,
		Name:      b.Name,
		ProgramID: b.ProgramID,
		CatalogID: b.CatalogID,
	}
}

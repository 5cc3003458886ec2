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

// ProfessorBody is the request body of professor writes.
type ProfessorBody struct {
	Name        string `json:"name" validate:"required,max=200"`
	InstituteID int64  `json:"instituteId" validate:"required,min=1"`
}

// ProfessorListQuery filters the professor collection.
type ProfessorListQuery struct {
	pagination.Query
	InstituteID *int64 `query:"instituteId" validate:"omitempty,min=1" description:"Only professors of this institute."`
}

var professorTags = []string{"Professors"}

var (
	listProfessors = contract.Contract[contract.Empty, ProfessorListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/professors",
		OperationID: "listProfessors",
		Summary:     "List professors",
		Tags:        professorTags,
		Output:      listOutput[domain.Professor](),
	}
	getProfessor = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/professors/{id}",
		OperationID: "getProfessor",
		Summary:     "Get a professor",
		Tags:        professorTags,
		Output:      getOutput[domain.Professor](),
	}
	createProfessor = contract.Contract[contract.Empty, contract.Empty, ProfessorBody]{
		Method:      http.MethodPost,
		Pattern:     "/professors",
		OperationID: "createProfessor",
		Summary:     "Create a professor",
		Tags:        professorTags,
		Output:      createOutput[domain.Professor](),
	}
	updateProfessor = contract.Contract[IDPath, contract.Empty, ProfessorBody]{
		Method:      http.MethodPut,
		Pattern:     "/professors/{id}",
		OperationID: "updateProfessor",
		Summary:     "Replace a professor",
		Tags:        professorTags,
		Output:      updateOutput[domain.Professor](),
	}
	deleteProfessor = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/professors/{id}",
		OperationID: "deleteProfessor",
		Summary:     "Delete a professor who teaches no class",
		Tags:        professorTags,
		Output:      deleteOutput(),
	}
)

// ProfessorHandler serves the professors resource.
type ProfessorHandler struct {
	professors store.Repository[domain.Professor]
	institutes store.Repository[domain.Institute]
}

// NewProfessorHandler creates a new ProfessorHandler.
func NewProfessorHandler(
	professors store.Repository[domain.Professor],
	institutes store.Repository[domain.Institute],
) *ProfessorHandler {
	return &ProfessorHandler{professors: professors, institutes: institutes}
}

// Module returns the bound professor routes.
func (h *ProfessorHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "professors",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listProfessors, h.list),
			endpoint.NewRoute(getProfessor, h.get),
			endpoint.NewRoute(createProfessor, h.create),
			endpoint.NewRoute(updateProfessor, h.update),
			endpoint.NewRoute(deleteProfessor, h.delete),
		},
		Exceptions: publicReads("/professors"),
	}
}

func (h *ProfessorHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, ProfessorListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Order: "name"}
	if in.Query.InstituteID != nil {
		q.Where = map[string]any{"institute_id": *in.Query.InstituteID}
	}
	return listPage(ctx, h.professors, q, in.Query.Query)
}

func (h *ProfessorHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.professors, "professor", in.Path.ID)
}

func (h *ProfessorHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, ProfessorBody],
) (contract.Result, error) {
	report, err := checkReferences(ctx, ref(h.institutes, "instituteId", "institute", in.Body.InstituteID))
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	professor := &domain.Professor{Name: in.Body.Name, InstituteID: in.Body.InstituteID}
	if err := h.professors.Create(ctx, professor); err != nil {
		return writeFailure(err, "professor")
	}
	return contract.Created(professor), nil
}

func (h *ProfessorHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, ProfessorBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.professors, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("professor", in.Path.ID), nil
	}
	report, err := checkReferences(ctx, ref(h.institutes, "instituteId", "institute", in.Body.InstituteID))
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	professor := &domain.Professor{ID: in.Path.ID, Name: in.Body.Name, InstituteID: in.Body.InstituteID}
	if err := h.professors.Update(ctx, professor); err != nil {
		return updateFailure(err, "professor", in.Path.ID)
	}
	return contract.OK(professor), nil
}

func (h *ProfessorHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.professors, "professor", in.Path.ID)
}

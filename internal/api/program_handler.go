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

// ProgramBody is the request body of program writes.
type ProgramBody struct {
	Code string `json:"code" validate:"required,max=16" description:"Unique program code."`
	Name string `json:"name" validate:"required,max=200"`
}

var programTags = []string{"Programs"}

var (
	listPrograms = contract.Contract[contract.Empty, pagination.Query, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/programs",
		OperationID: "listPrograms",
		Summary:     "List degree programs",
		Tags:        programTags,
		Output:      listOutput[domain.Program](),
	}
	getProgram = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/programs/{id}",
		OperationID: "getProgram",
		Summary:     "Get a degree program",
		Tags:        programTags,
		Output:      getOutput[domain.Program](),
	}
	createProgram = contract.Contract[contract.Empty, contract.Empty, ProgramBody]{
		Method:      http.MethodPost,
		Pattern:     "/programs",
		OperationID: "createProgram",
		Summary:     "Create a degree program",
		Tags:        programTags,
		Output:      createOutput[domain.Program](),
	}
	updateProgram = contract.Contract[IDPath, contract.Empty, ProgramBody]{
		Method:      http.MethodPut,
		Pattern:     "/programs/{id}",
		OperationID: "updateProgram",
		Summary:     "Replace a degree program",
		Tags:        programTags,
		Output:      updateOutput[domain.Program](),
	}
	deleteProgram = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/programs/{id}",
		OperationID: "deleteProgram",
		Summary:     "Delete an unused degree program",
		Tags:        programTags,
		Output:      deleteOutput(),
	}
)

// ProgramHandler serves the programs resource.
type ProgramHandler struct {
	programs store.Repository[domain.Program]
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programs store.Repository[domain.Program]) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// Module returns the bound program routes.
func (h *ProgramHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "programs",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listPrograms, h.list),
			endpoint.NewRoute(getProgram, h.get),
			endpoint.NewRoute(createProgram, h.create),
			endpoint.NewRoute(updateProgram, h.update),
			endpoint.NewRoute(deleteProgram, h.delete),
		},
		Exceptions: publicReads("/programs"),
	}
}

func (h *ProgramHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, pagination.Query, contract.Empty],
) (contract.Result, error) {
	return listPage(ctx, h.programs, store.Query{Order: "code"}, in.Query)
}

func (h *ProgramHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.programs, "program", in.Path.ID)
}

func (h *ProgramHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, ProgramBody],
) (contract.Result, error) {
	program := &domain.Program{Code: in.Body.Code, Name: in.Body.Name}
	if err := h.programs.Create(ctx, program); err != nil {
		return writeFailure(err, "program", "code")
	}
	return contract.Created(program), nil
}

func (h *ProgramHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, ProgramBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.programs, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("program", in.Path.ID), nil
	}

	program := &domain.Program{ID: in.Path.ID, Code: in.Body.Code, Name: in.Body.Name}
	if err := h.programs.Update(ctx, program); err != nil {
		return updateFailure(err, "program", in.Path.ID, "code")
	}
	return contract.OK(program), nil
}

func (h *ProgramHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.programs, "program", in.Path.ID)
}

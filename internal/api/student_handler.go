package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/validation"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// StudentBody is the request body of student writes.
type StudentBody struct {
	RA               string `json:"ra" validate:"required,numeric,max=16" description:"Unique academic registry number."`
	Name             string `json:"name" validate:"required,max=200"`
	ProgramID        int64  `json:"programId" validate:"required,min=1"`
	CatalogID        int64  `json:"catalogId" validate:"required,min=1"`
	SpecializationID *int64 `json:"specializationId,omitempty" validate:"omitempty,min=1" description:"Must belong to the same program and catalog."`
}

// StudentListQuery filters the student collection.
type StudentListQuery struct {
	pagination.Query
	ProgramID *int64 `query:"programId" validate:"omitempty,min=1"`
	CatalogID *int64 `query:"catalogId" validate:"omitempty,min=1"`
}

var studentTags = []string{"Students"}

var (
	listStudents = contract.Contract[contract.Empty, StudentListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/students",
		OperationID: "listStudents",
		Summary:     "List students",
		Tags:        studentTags,
		Output:      listOutput[domain.Student](),
	}
	getStudent = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/students/{id}",
		OperationID: "getStudent",
		Summary:     "Get a student",
		Tags:        studentTags,
		Output:      getOutput[domain.Student](),
	}
	createStudent = contract.Contract[contract.Empty, contract.Empty, StudentBody]{
		Method:      http.MethodPost,
		Pattern:     "/students",
		OperationID: "createStudent",
		Summary:     "Create a student",
		Tags:        studentTags,
		Output:      createOutput[domain.Student](),
	}
	updateStudent = contract.Contract[IDPath, contract.Empty, StudentBody]{
		Method:      http.MethodPut,
		Pattern:     "/students/{id}",
		OperationID: "updateStudent",
		Summary:     "Replace a student",
		Tags:        studentTags,
		Output:      updateOutput[domain.Student](),
	}
	deleteStudent = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/students/{id}",
		OperationID: "deleteStudent",
		Summary:     "Delete a student",
		Tags:        studentTags,
		Output:      deleteOutput(),
	}
)

// StudentHandler serves the students resource.
type StudentHandler struct {
	students        store.Repository[domain.Student]
	programs        store.Repository[domain.Program]
	catalogs        store.Repository[domain.Catalog]
	specializations store.Repository[domain.Specialization]
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	students store.Repository[domain.Student],
	programs store.Repository[domain.Program],
	catalogs store.Repository[domain.Catalog],
	specializations store.Repository[domain.Specialization],
) *StudentHandler {
	return &StudentHandler{
		students:        students,
		programs:        programs,
		catalogs:        catalogs,
		specializations: specializations,
	}
}

// Module returns the bound student routes.
func (h *StudentHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "students",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listStudents, h.list),
			endpoint.NewRoute(getStudent, h.get),
			endpoint.NewRoute(createStudent, h.create),
			endpoint.NewRoute(updateStudent, h.update),
			endpoint.NewRoute(deleteStudent, h.delete),
		},
		Exceptions: publicReads("/students"),
	}
}

func (h *StudentHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, StudentListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Where: map[string]any{}, Order: "ra"}
	if in.Query.ProgramID != nil {
		q.Where["program_id"] = *in.Query.ProgramID
	}
	if in.Query.CatalogID != nil {
		q.Where["catalog_id"] = *in.Query.CatalogID
	}
	return listPage(ctx, h.students, q, in.Query.Query)
}

func (h *StudentHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.students, "student", in.Path.ID)
}

// checkRefs validates the program, catalog and optional specialization of
// b. A specialization must belong to the student's program and catalog.
func (h *StudentHandler) checkRefs(ctx context.Context, b StudentBody) (*contract.Report, error) {
	report, err := checkReferences(ctx,
		ref(h.programs, "programId", "program", b.ProgramID),
		ref(h.catalogs, "catalogId", "catalog", b.CatalogID),
	)
	if err != nil {
		return nil, err
	}
	if b.SpecializationID == nil {
		return report, nil
	}

	spec, err := h.specializations.FindUnique(ctx, byID(*b.SpecializationID))
	switch {
	case errors.Is(err, store.ErrNotFound):
		if report == nil {
			report = contract.NewReport()
		}
		report.Add(contract.NewFieldError(contract.CodeReferenceNotFound,
			fmt.Sprintf("specialization %d does not exist", *b.SpecializationID),
			validation.PartBody, "specializationId"))
	case err != nil:
		return nil, err
	case spec.ProgramID != b.ProgramID || spec.CatalogID != b.CatalogID:
		if report == nil {
			report = contract.NewReport()
		}
		report.Add(contract.NewFieldError(contract.CodeInvalidValue,
			"specialization does not belong to the given program and catalog",
			validation.PartBody, "specializationId"))
	}
	return report, nil
}

func (h *StudentHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, StudentBody],
) (contract.Result, error) {
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	student := studentFromBody(0, in.Body)
	if err := h.students.Create(ctx, student); err != nil {
		return writeFailure(err, "student", "ra")
	}
	return contract.Created(student), nil
}

func (h *StudentHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, StudentBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.students, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("student", in.Path.ID), nil
	}
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	student := studentFromBody(in.Path.ID, in.Body)
	if err := h.students.Update(ctx, student); err != nil {
		return updateFailure(err, "student", in.Path.ID, "ra")
	}
	return contract.OK(student), nil
}

func (h *StudentHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.students, "student", in.Path.ID)
}

func studentFromBody(id int64, b StudentBody) *domain.Student {
	return &domain.Student{
		ID:               id,
		RA:               b.RA,
		Name:             b.Name,
		ProgramID:        b.ProgramID,
		CatalogID:        b.CatalogID,
		SpecializationID: b.SpecializationID,
	}
}

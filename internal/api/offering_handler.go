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

// CourseOfferingBody is the request body of course offering writes.
type CourseOfferingBody struct {
	CourseID int64       `json:"courseId" validate:"required,min=1"`
	Year     int         `json:"year" validate:"min=1960,max=2100"`
	Term     domain.Term `json:"term" validate:"required,oneof=FIRST SECOND SUMMER"`
}

// CourseOfferingListQuery filters the course offering collection.
type CourseOfferingListQuery struct {
	pagination.Query
	CourseID *int64      `query:"courseId" validate:"omitempty,min=1"`
	Year     *int        `query:"year" validate:"omitempty,min=1960,max=2100"`
	Term     domain.Term `query:"term" validate:"omitempty,oneof=FIRST SECOND SUMMER"`
}

var offeringTags = []string{"Course offerings"}

var (
	listCourseOfferings = contract.Contract[contract.Empty, CourseOfferingListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/course-offerings",
		OperationID: "listCourseOfferings",
		Summary:     "List course offerings",
		Tags:        offeringTags,
		Output:      listOutput[domain.CourseOffering](),
	}
	getCourseOffering = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/course-offerings/{id}",
		OperationID: "getCourseOffering",
		Summary:     "Get a course offering",
		Tags:        offeringTags,
		Output:      getOutput[domain.CourseOffering](),
	}
	createCourseOffering = contract.Contract[contract.Empty, contract.Empty, CourseOfferingBody]{
		Method:      http.MethodPost,
		Pattern:     "/course-offerings",
		OperationID: "createCourseOffering",
		Summary:     "Offer a course in a term",
		Tags:        offeringTags,
		Output:      createOutput[domain.CourseOffering](),
	}
	updateCourseOffering = contract.Contract[IDPath, contract.Empty, CourseOfferingBody]{
		Method:      http.MethodPut,
		Pattern:     "/course-offerings/{id}",
		OperationID: "updateCourseOffering",
		Summary:     "Replace a course offering",
		Tags:        offeringTags,
		Output:      updateOutput[domain.CourseOffering](),
	}
	deleteCourseOffering = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/course-offerings/{id}",
		OperationID: "deleteCourseOffering",
		Summary:     "Delete a course offering without classes",
		Tags:        offeringTags,
		Output:      deleteOutput(),
	}
)

// CourseOfferingHandler serves the course offerings resource.
type CourseOfferingHandler struct {
	offerings store.Repository[domain.CourseOffering]
	courses   store.Repository[domain.Course]
}

// NewCourseOfferingHandler creates a new CourseOfferingHandler.
func NewCourseOfferingHandler(
	offerings store.Repository[domain.CourseOffering],
	courses store.Repository[domain.Course],
) *CourseOfferingHandler {
	return &CourseOfferingHandler{offerings: offerings, courses: courses}
}

// Module returns the bound course offering routes.
func (h *CourseOfferingHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "course-offerings",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listCourseOfferings, h.list),
			endpoint.NewRoute(getCourseOffering, h.get),
			endpoint.NewRoute(createCourseOffering, h.create),
			endpoint.NewRoute(updateCourseOffering, h.update),
			endpoint.NewRoute(deleteCourseOffering, h.delete),
		},
		Exceptions: publicReads("/course-offerings"),
	}
}

var offeringUnique = []string{"courseId", "year", "term"}

func (h *CourseOfferingHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, CourseOfferingListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Where: map[string]any{}, Order: "year desc, term, id"}
	if in.Query.CourseID != nil {
		q.Where["course_id"] = *in.Query.CourseID
	}
	if in.Query.Year != nil {
		q.Where["year"] = *in.Query.Year
	}
	if in.Query.Term != "" {
		q.Where["term"] = string(in.Query.Term)
	}
	return listPage(ctx, h.offerings, q, in.Query.Query)
}

func (h *CourseOfferingHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.offerings, "course offering", in.Path.ID)
}

func (h *CourseOfferingHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, CourseOfferingBody],
) (contract.Result, error) {
	report, err := checkReferences(ctx, ref(h.courses, "courseId", "course", in.Body.CourseID))
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	offering := &domain.CourseOffering{CourseID: in.Body.CourseID, Year: in.Body.Year, Term: in.Body.Term}
	if err := h.offerings.Create(ctx, offering); err != nil {
		return writeFailure(err, "course offering", offeringUnique...)
	}
	return contract.Created(offering), nil
}

func (h *CourseOfferingHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, CourseOfferingBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.offerings, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("course offering", in.Path.ID), nil
	}
	report, err := checkReferences(ctx, ref(h.courses, "courseId", "course", in.Body.CourseID))
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	offering := &domain.CourseOffering{
		ID:       in.Path.ID,
		CourseID: in.Body.CourseID,
		Year:     in.Body.Year,
		Term:     in.Body.Term,
	}
	if err := h.offerings.Update(ctx, offering); err != nil {
		return updateFailure(err, "course offering", in.Path.ID, offeringUnique...)
	}
	return contract.OK(offering), nil
}

func (h *CourseOfferingHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.offerings, "course offering", in.Path.ID)
}

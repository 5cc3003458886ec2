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

// CourseBody is the request body of course writes.
type CourseBody struct {
	Code        string `json:"code" validate:"required,max=16" description:"Unique course code, such as MC102."`
	Name        string `json:"name" validate:"required,max=200"`
	Credits     int    `json:"credits" validate:"min=0,max=60"`
	InstituteID int64  `json:"instituteId" validate:"required,min=1"`
}

// CourseListQuery filters the course collection.
type CourseListQuery struct {
	pagination.Query
	InstituteID *int64 `query:"instituteId" validate:"omitempty,min=1" description:"Only courses of this institute."`
}

var courseTags = []string{"Courses"}

var (
	listCourses = contract.Contract[contract.Empty, CourseListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/courses",
		OperationID: "listCourses",
		Summary:     "List courses",
		Tags:        courseTags,
		Output:      listOutput[domain.Course](),
	}
	getCourse = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/courses/{id}",
		OperationID: "getCourse",
		Summary:     "Get a course",
		Tags:        courseTags,
		Output:      getOutput[domain.Course](),
	}
	createCourse = contract.Contract[contract.Empty, contract.Empty, CourseBody]{
		Method:      http.MethodPost,
		Pattern:     "/courses",
		OperationID: "createCourse",
		Summary:     "Create a course",
		Tags:        courseTags,
		Output:      createOutput[domain.Course](),
	}
	updateCourse = contract.Contract[IDPath, contract.Empty, CourseBody]{
		Method:      http.MethodPut,
		Pattern:     "/courses/{id}",
		OperationID: "updateCourse",
		Summary:     "Replace a course",
		Tags:        courseTags,
		Output:      updateOutput[domain.Course](),
	}
	deleteCourse = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/courses/{id}",
		OperationID: "deleteCourse",
		Summary:     "Delete a course that is not offered",
		Tags:        courseTags,
		Output:      deleteOutput(),
	}
)

// CourseHandler serves the courses resource.
type CourseHandler struct {
	courses    store.Repository[domain.Course]
	institutes store.Repository[domain.Institute]
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(
	courses store.Repository[domain.Course],
	institutes store.Repository[domain.Institute],
) *CourseHandler {
	return &CourseHandler{courses: courses, institutes: institutes}
}

// Module returns the bound course routes.
func (h *CourseHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "courses",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listCourses, h.list),
			endpoint.NewRoute(getCourse, h.get),
			endpoint.NewRoute(createCourse, h.create),
			endpoint.NewRoute(updateCourse, h.update),
			endpoint.NewRoute(deleteCourse, h.delete),
		},
		Exceptions: publicReads("/courses"),
	}
}

func (h *CourseHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, CourseListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Order: "code"}
	if in.Query.InstituteID != nil {
		q.Where = map[string]any{"institute_id": *in.Query.InstituteID}
	}
	return listPage(ctx, h.courses, q, in.Query.Query)
}

func (h *CourseHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.courses, "course", in.Path.ID)
}

func (h *CourseHandler) checkRefs(ctx context.Context, course *domain.Course) (*contract.Report, error) {
	return checkReferences(ctx, ref(h.institutes, "instituteId", "institute", course.InstituteID))
}

func (h *CourseHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, CourseBody],
) (contract.Result, error) {
	course := courseFromBody(0, in.Body)
	report, err := h.checkRefs(ctx, course)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}
	if err := h.courses.Create(ctx, course); err != nil {
		return writeFailure(err, "course", "code")
	}
	return contract.Created(course), nil
}

func (h *CourseHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, CourseBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.courses, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("course", in.Path.ID), nil
	}

	course := courseFromBody(in.Path.ID, in.Body)
	report, err := h.checkRefs(ctx, course)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}
	if err := h.courses.Update(ctx, course); err != nil {
		return updateFailure(err, "course", in.Path.ID, "code")
	}
	return contract.OK(course), nil
}

func (h *CourseHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.courses, "course", in.Path.ID)
}

func courseFromBody(id int64, b CourseBody) *domain.Course {
	return &domain.Course{
		ID:          id,
		Code:        b.Code,
		Name:        b.Name,
		Credits:     b.Credits,
		InstituteID: b.InstituteID,
	}
}

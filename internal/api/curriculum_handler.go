package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/validation"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// CurriculumCourseBody places one course in a curriculum.
type CurriculumCourseBody struct {
	CourseID int64 `json:"courseId" validate:"required,min=1"`
	Semester int   `json:"semester" validate:"min=1,max=20" description:"Suggested semester, starting at 1."`
}

// CurriculumBody is the request body of curriculum writes. Courses replaces
// the whole course list.
type CurriculumBody struct {
	ProgramID        int64                  `json:"programId" validate:"required,min=1"`
	CatalogID        int64                  `json:"catalogId" validate:"required,min=1"`
	SpecializationID *int64                 `json:"specializationId,omitempty" validate:"omitempty,min=1"`
	Courses          []CurriculumCourseBody `json:"courses" validate:"required,min=1,max=200,dive"`
}

// CurriculumListQuery filters the curriculum collection.
type CurriculumListQuery struct {
	pagination.Query
	ProgramID *int64 `query:"programId" validate:"omitempty,min=1"`
	CatalogID *int64 `query:"catalogId" validate:"omitempty,min=1"`
}

var curriculumTags = []string{"Curricula"}

var (
	listCurricula = contract.Contract[contract.Empty, CurriculumListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/curricula",
		OperationID: "listCurricula",
		Summary:     "List curricula with their courses",
		Tags:        curriculumTags,
		Output:      listOutput[domain.Curriculum](),
	}
	getCurriculum = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/curricula/{id}",
		OperationID: "getCurriculum",
		Summary:     "Get a curriculum with its courses",
		Tags:        curriculumTags,
		Output:      getOutput[domain.Curriculum](),
	}
	createCurriculum = contract.Contract[contract.Empty, contract.Empty, CurriculumBody]{
		Method:      http.MethodPost,
		Pattern:     "/curricula",
		OperationID: "createCurriculum",
		Summary:     "Create a curriculum and its course list",
		Tags:        curriculumTags,
		Output:      createOutput[domain.Curriculum](),
	}
	updateCurriculum = contract.Contract[IDPath, contract.Empty, CurriculumBody]{
		Method:      http.MethodPut,
		Pattern:     "/curricula/{id}",
		OperationID: "updateCurriculum",
		Summary:     "Replace a curriculum and its course list",
		Tags:        curriculumTags,
		Output:      updateOutput[domain.Curriculum](),
	}
	deleteCurriculum = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/curricula/{id}",
		OperationID: "deleteCurriculum",
		Summary:     "Delete a curriculum and its course list",
		Tags:        curriculumTags,
		Output:      deleteOutput(),
	}
)

// CurriculumHandler serves the curricula resource.
type CurriculumHandler struct {
	curricula       store.Repository[domain.Curriculum]
	entries         store.Repository[domain.CurriculumCourse]
	programs        store.Repository[domain.Program]
	catalogs        store.Repository[domain.Catalog]
	specializations store.Repository[domain.Specialization]
	courses         store.Repository[domain.Course]
	tx              store.Transactor
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(
	curricula store.Repository[domain.Curriculum],
	entries store.Repository[domain.CurriculumCourse],
	programs store.Repository[domain.Program],
	catalogs store.Repository[domain.Catalog],
	specializations store.Repository[domain.Specialization],
	courses store.Repository[domain.Course],
	tx store.Transactor,
) *CurriculumHandler {
	return &CurriculumHandler{
		curricula:       curricula,
		entries:         entries,
		programs:        programs,
		catalogs:        catalogs,
		specializations: specializations,
		courses:         courses,
		tx:              tx,
	}
}

// Module returns the bound curriculum routes.
func (h *CurriculumHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "curricula",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listCurricula, h.list),
			endpoint.NewRoute(getCurriculum, h.get),
			endpoint.NewRoute(createCurriculum, h.create),
			endpoint.NewRoute(updateCurriculum, h.update),
			endpoint.NewRoute(deleteCurriculum, h.delete),
		},
		Exceptions: publicReads("/curricula"),
	}
}

func (h *CurriculumHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, CurriculumListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Where: map[string]any{}}
	if in.Query.ProgramID != nil {
		q.Where["program_id"] = *in.Query.ProgramID
	}
	if in.Query.CatalogID != nil {
		q.Where["catalog_id"] = *in.Query.CatalogID
	}

	total, err := h.curricula.Count(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	q.Skip, q.Take = in.Query.Skip(), in.Query.Take()
	curricula, err := h.curricula.FindMany(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	if err := h.loadCourses(ctx, curricula); err != nil {
		return contract.Result{}, err
	}

	env, err := pagination.Paginate(curricula, total, in.Query.Query, listLinks(ctx))
	if err != nil {
		return contract.Result{}, err
	}
	return contract.OK(env), nil
}

func (h *CurriculumHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	curriculum, err := h.curricula.FindUnique(ctx, byID(in.Path.ID))
	if errors.Is(err, store.ErrNotFound) {
		return notFound("curriculum", in.Path.ID), nil
	}
	if err != nil {
		return contract.Result{}, err
	}

	curricula := []domain.Curriculum{*curriculum}
	if err := h.loadCourses(ctx, curricula); err != nil {
		return contract.Result{}, err
	}
	return contract.OK(curricula[0]), nil
}

// loadCourses fills the course list of every curriculum with one query.
func (h *CurriculumHandler) loadCourses(ctx context.Context, curricula []domain.Curriculum) error {
	if len(curricula) == 0 {
		return nil
	}
	ids := make([]int64, len(curricula))
	index := make(map[int64]int, len(curricula))
	for i, c := range curricula {
		ids[i] = c.ID
		index[c.ID] = i
		curricula[i].Courses = []domain.CurriculumCourse{}
	}

	entries, err := h.entries.FindMany(ctx, store.Query{
		Filters: []store.Filter{{Column: "curriculum_id", Op: store.OpIn, Value: ids}},
		Order:   "curriculum_id, semester, id",
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		i := index[e.CurriculumID]
		curricula[i].Courses = append(curricula[i].Courses, e)
	}
	return nil
}

// checkRefs validates every reference of b and rejects courses listed
// twice.
func (h *CurriculumHandler) checkRefs(ctx context.Context, b CurriculumBody) (*contract.Report, error) {
	refs := []reference{
		ref(h.programs, "programId", "program", b.ProgramID),
		ref(h.catalogs, "catalogId", "catalog", b.CatalogID),
	}
	if b.SpecializationID != nil {
		refs = append(refs, ref(h.specializations, "specializationId", "specialization", *b.SpecializationID))
	}

	seen := make(map[int64]bool, len(b.Courses))
	var duplicates []contract.FieldError
	for i, c := range b.Courses {
		field := fmt.Sprintf("courses.%d.courseId", i)
		if seen[c.CourseID] {
			duplicates = append(duplicates, contract.NewFieldError(contract.CodeInvalidValue,
				fmt.Sprintf("course %d is listed more than once", c.CourseID),
				validation.PartBody, "courses", strconv.Itoa(i), "courseId"))
			continue
		}
		seen[c.CourseID] = true
		refs = append(refs, ref(h.courses, field, "course", c.CourseID))
	}

	report, err := checkReferences(ctx, refs...)
	if err != nil {
		return nil, err
	}
	if len(duplicates) > 0 {
		if report == nil {
			report = contract.NewReport()
		}
		report.Add(duplicates...)
	}
	return report, nil
}

// save writes curriculum and replaces its course list in one transaction.
func (h *CurriculumHandler) save(ctx context.Context, curriculum *domain.Curriculum, create bool) error {
	return h.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if create {
			if err := h.curricula.Create(ctx, curriculum); err != nil {
				return err
			}
		} else {
			if err := h.curricula.Update(ctx, curriculum); err != nil {
				return err
			}
			err := h.entries.Delete(ctx, map[string]any{"curriculum_id": curriculum.ID})
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		for i := range curriculum.Courses {
			curriculum.Courses[i].ID = 0
			curriculum.Courses[i].CurriculumID = curriculum.ID
			if err := h.entries.Create(ctx, &curriculum.Courses[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *CurriculumHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, CurriculumBody],
) (contract.Result, error) {
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	curriculum := curriculumFromBody(0, in.Body)
	if err := h.save(ctx, curriculum, true); err != nil {
		return writeFailure(err, "curriculum")
	}
	return contract.Created(curriculum), nil
}

func (h *CurriculumHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, CurriculumBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.curricula, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("curriculum", in.Path.ID), nil
	}
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	curriculum := curriculumFromBody(in.Path.ID, in.Body)
	if err := h.save(ctx, curriculum, false); err != nil {
		return updateFailure(err, "curriculum", in.Path.ID)
	}
	return contract.OK(curriculum), nil
}

func (h *CurriculumHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.curricula, "curriculum", in.Path.ID)
}

func curriculumFromBody(id int64, b CurriculumBody) *domain.Curriculum {
	courses := make([]domain.CurriculumCourse, len(b.Courses))
	for i, c := range b.Courses {
		courses[i] = domain.CurriculumCourse{CourseID: c.CourseID, Semester: c.Semester}
	}
	return &domain.Curriculum{
		ID:               id,
		ProgramID:        b.ProgramID,
		CatalogID:        b.CatalogID,
		SpecializationID: b.SpecializationID,
		Courses:          courses,
	}
}

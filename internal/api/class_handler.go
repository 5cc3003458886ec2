package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// ClassBody is the request body of class writes. ProfessorIDs replaces the
// whole set of professors teaching the class.
type ClassBody struct {
	Code             string  `json:"code" validate:"required,max=8" description:"Class code, unique within the offering."`
	CourseOfferingID int64   `json:"courseOfferingId" validate:"required,min=1"`
	ProfessorIDs     []int64 `json:"professorIds" validate:"max=10,unique,dive,min=1"`
}

// ClassListQuery filters the class collection.
type ClassListQuery struct {
	pagination.Query
	CourseOfferingID *int64 `query:"courseOfferingId" validate:"omitempty,min=1"`
}

var classTags = []string{"Classes"}

var (
	listClasses = contract.Contract[contract.Empty, ClassListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/classes",
		OperationID: "listClasses",
		Summary:     "List classes",
		Tags:        classTags,
		Output:      listOutput[domain.Class](),
	}
	getClass = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/classes/{id}",
		OperationID: "getClass",
		Summary:     "Get a class with its professors",
		Tags:        classTags,
		Output:      getOutput[domain.Class](),
	}
	listClassSchedulesOf = contract.Contract[IDPath, pagination.Query, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/classes/{id}/schedules",
		OperationID: "listClassSchedulesOfClass",
		Summary:     "List the weekly meetings of a class",
		Tags:        classTags,
		Output: contract.NewOutput().
			OK(new(pagination.Envelope[domain.ClassSchedule]), "A page of the class's schedules.").
			BadRequest("Invalid path or query parameters.").
			NotFound("No class has this identifier.").
			MustBuild(),
	}
	createClass = contract.Contract[contract.Empty, contract.Empty, ClassBody]{
		Method:      http.MethodPost,
		Pattern:     "/classes",
		OperationID: "createClass",
		Summary:     "Create a class",
		Tags:        classTags,
		Output:      createOutput[domain.Class](),
	}
	updateClass = contract.Contract[IDPath, contract.Empty, ClassBody]{
		Method:      http.MethodPut,
		Pattern:     "/classes/{id}",
		OperationID: "updateClass",
		Summary:     "Replace a class and its professors",
		Tags:        classTags,
		Output:      updateOutput[domain.Class](),
	}
	deleteClass = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/classes/{id}",
		OperationID: "deleteClass",
		Summary:     "Delete a class without schedules",
		Tags:        classTags,
		Output:      deleteOutput(),
	}
)

// ClassHandler serves the classes resource.
type ClassHandler struct {
	classes    store.Repository[domain.Class]
	links      store.Repository[domain.ClassProfessor]
	offerings  store.Repository[domain.CourseOffering]
	professors store.Repository[domain.Professor]
	schedules  store.Repository[domain.ClassSchedule]
	tx         store.Transactor
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(
	classes store.Repository[domain.Class],
	links store.Repository[domain.ClassProfessor],
	offerings store.Repository[domain.CourseOffering],
	professors store.Repository[domain.Professor],
	schedules store.Repository[domain.ClassSchedule],
	tx store.Transactor,
) *ClassHandler {
	return &ClassHandler{
		classes:    classes,
		links:      links,
		offerings:  offerings,
		professors: professors,
		schedules:  schedules,
		tx:         tx,
	}
}

// Module returns the bound class routes.
func (h *ClassHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "classes",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listClasses, h.list),
			endpoint.NewRoute(getClass, h.get),
			endpoint.NewRoute(listClassSchedulesOf, h.listSchedules),
			endpoint.NewRoute(createClass, h.create),
			endpoint.NewRoute(updateClass, h.update),
			endpoint.NewRoute(deleteClass, h.delete),
		},
		Exceptions: publicReads("/classes", "schedules"),
	}
}

var classUnique = []string{"courseOfferingId", "code"}

func (h *ClassHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, ClassListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Order: "code"}
	if in.Query.CourseOfferingID != nil {
		q.Where = map[string]any{"course_offering_id": *in.Query.CourseOfferingID}
	}
	total, err := h.classes.Count(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	q.Skip, q.Take = in.Query.Skip(), in.Query.Take()
	classes, err := h.classes.FindMany(ctx, q)
	if err != nil {
		return contract.Result{}, err
	}
	if err := h.loadProfessors(ctx, classes); err != nil {
		return contract.Result{}, err
	}

	env, err := pagination.Paginate(classes, total, in.Query.Query, listLinks(ctx))
	if err != nil {
		return contract.Result{}, err
	}
	return contract.OK(env), nil
}

func (h *ClassHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	class, err := h.classes.FindUnique(ctx, byID(in.Path.ID))
	if errors.Is(err, store.ErrNotFound) {
		return notFound("class", in.Path.ID), nil
	}
	if err != nil {
		return contract.Result{}, err
	}

	classes := []domain.Class{*class}
	if err := h.loadProfessors(ctx, classes); err != nil {
		return contract.Result{}, err
	}
	return contract.OK(classes[0]), nil
}

func (h *ClassHandler) listSchedules(
	ctx context.Context,
	in contract.Input[IDPath, pagination.Query, contract.Empty],
) (contract.Result, error) {
	ok, err := exists(ctx, h.classes, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("class", in.Path.ID), nil
	}
	q := store.Query{Where: map[string]any{"class_id": in.Path.ID}, Order: "day_of_week, start_time"}
	return listPage(ctx, h.schedules, q, in.Query)
}

// loadProfessors fills ProfessorIDs of every class with one query.
func (h *ClassHandler) loadProfessors(ctx context.Context, classes []domain.Class) error {
	if len(classes) == 0 {
		return nil
	}
	ids := make([]int64, len(classes))
	byClass := make(map[int64]int, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
		byClass[c.ID] = i
		classes[i].ProfessorIDs = []int64{}
	}

	links, err := h.links.FindMany(ctx, store.Query{
		Filters: []store.Filter{{Column: "class_id", Op: store.OpIn, Value: ids}},
		Order:   "class_id, professor_id",
	})
	if err != nil {
		return err
	}
	for _, l := range links {
		i := byClass[l.ClassID]
		classes[i].ProfessorIDs = append(classes[i].ProfessorIDs, l.ProfessorID)
	}
	return nil
}

func (h *ClassHandler) checkRefs(ctx context.Context, b ClassBody) (*contract.Report, error) {
	refs := []reference{ref(h.offerings, "courseOfferingId", "course offering", b.CourseOfferingID)}
	for i, id := range b.ProfessorIDs {
		refs = append(refs, ref(h.professors, fmt.Sprintf("professorIds.%d", i), "professor", id))
	}
	return checkReferences(ctx, refs...)
}

// save writes class and replaces its professor links in one transaction.
func (h *ClassHandler) save(ctx context.Context, class *domain.Class, create bool) error {
	return h.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if create {
			if err := h.classes.Create(ctx, class); err != nil {
				return err
			}
		} else {
			if err := h.classes.Update(ctx, class); err != nil {
				return err
			}
			err := h.links.Delete(ctx, map[string]any{"class_id": class.ID})
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		for _, pid := range class.ProfessorIDs {
			if err := h.links.Create(ctx, &domain.ClassProfessor{ClassID: class.ID, ProfessorID: pid}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *ClassHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, ClassBody],
) (contract.Result, error) {
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	class := classFromBody(0, in.Body)
	if err := h.save(ctx, class, true); err != nil {
		return writeFailure(err, "class", classUnique...)
	}
	return contract.Created(class), nil
}

func (h *ClassHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, ClassBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.classes, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("class", in.Path.ID), nil
	}
	report, err := h.checkRefs(ctx, in.Body)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	class := classFromBody(in.Path.ID, in.Body)
	if err := h.save(ctx, class, false); err != nil {
		return updateFailure(err, "class", in.Path.ID, classUnique...)
	}
	return contract.OK(class), nil
}

func (h *ClassHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.classes, "class", in.Path.ID)
}

func classFromBody(id int64, b ClassBody) *domain.Class {
	professors := append([]int64{}, b.ProfessorIDs...)
	return &domain.Class{
		ID:               id,
		Code:             b.Code,
		CourseOfferingID: b.CourseOfferingID,
		ProfessorIDs:     professors,
	}
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/validation"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// ClassScheduleBody is the request body of class schedule writes.
type ClassScheduleBody struct {
	ClassID   int64  `json:"classId" validate:"required,min=1"`
	RoomID    *int64 `json:"roomId,omitempty" validate:"omitempty,min=1" description:"Room booked for the meeting, if any."`
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6" description:"0 is Sunday, 6 is Saturday."`
	StartTime string `json:"startTime" validate:"required,datetime=15:04" description:"HH:MM."`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04" description:"HH:MM, after startTime."`
}

// ClassScheduleListQuery filters the class schedule collection.
type ClassScheduleListQuery struct {
	pagination.Query
	ClassID   *int64 `query:"classId" validate:"omitempty,min=1"`
	RoomID    *int64 `query:"roomId" validate:"omitempty,min=1"`
	DayOfWeek *int   `query:"dayOfWeek" validate:"omitempty,min=0,max=6"`
}

var scheduleTags = []string{"Class schedules"}

var (
	listClassSchedules = contract.Contract[contract.Empty, ClassScheduleListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/class-schedules",
		OperationID: "listClassSchedules",
		Summary:     "List weekly class meetings",
		Tags:        scheduleTags,
		Output:      listOutput[domain.ClassSchedule](),
	}
	getClassSchedule = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/class-schedules/{id}",
		OperationID: "getClassSchedule",
		Summary:     "Get a class meeting",
		Tags:        scheduleTags,
		Output:      getOutput[domain.ClassSchedule](),
	}
	createClassSchedule = contract.Contract[contract.Empty, contract.Empty, ClassScheduleBody]{
		Method:      http.MethodPost,
		Pattern:     "/class-schedules",
		OperationID: "createClassSchedule",
		Summary:     "Schedule a class meeting",
		Tags:        scheduleTags,
		Output:      createOutput[domain.ClassSchedule](),
	}
	updateClassSchedule = contract.Contract[IDPath, contract.Empty, ClassScheduleBody]{
		Method:      http.MethodPut,
		Pattern:     "/class-schedules/{id}",
		OperationID: "updateClassSchedule",
		Summary:     "Move a class meeting",
		Tags:        scheduleTags,
		Output:      updateOutput[domain.ClassSchedule](),
	}
	deleteClassSchedule = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/class-schedules/{id}",
		OperationID: "deleteClassSchedule",
		Summary:     "Cancel a class meeting",
		Tags:        scheduleTags,
		Output:      deleteOutput(),
	}
)

// ClassScheduleHandler serves the class schedules resource.
type ClassScheduleHandler struct {
	schedules store.Repository[domain.ClassSchedule]
	classes   store.Repository[domain.Class]
	rooms     store.Repository[domain.Room]
	tx        store.Transactor
}

// NewClassScheduleHandler creates a new ClassScheduleHandler.
func NewClassScheduleHandler(
	schedules store.Repository[domain.ClassSchedule],
	classes store.Repository[domain.Class],
	rooms store.Repository[domain.Room],
	tx store.Transactor,
) *ClassScheduleHandler {
	return &ClassScheduleHandler{schedules: schedules, classes: classes, rooms: rooms, tx: tx}
}

// Module returns the bound class schedule routes.
func (h *ClassScheduleHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "class-schedules",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listClassSchedules, h.list),
			endpoint.NewRoute(getClassSchedule, h.get),
			endpoint.NewRoute(createClassSchedule, h.create),
			endpoint.NewRoute(updateClassSchedule, h.update),
			endpoint.NewRoute(deleteClassSchedule, h.delete),
		},
		Exceptions: publicReads("/class-schedules"),
	}
}

func (h *ClassScheduleHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, ClassScheduleListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Where: map[string]any{}, Order: "day_of_week, start_time, id"}
	if in.Query.ClassID != nil {
		q.Where["class_id"] = *in.Query.ClassID
	}
	if in.Query.RoomID != nil {
		q.Where["room_id"] = *in.Query.RoomID
	}
	if in.Query.DayOfWeek != nil {
		q.Where["day_of_week"] = *in.Query.DayOfWeek
	}
	return listPage(ctx, h.schedules, q, in.Query.Query)
}

func (h *ClassScheduleHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.schedules, "class schedule", in.Path.ID)
}

// check validates the time range and references of slot.
func (h *ClassScheduleHandler) check(ctx context.Context, slot domain.ClassSchedule) (*contract.Report, error) {
	refs := []reference{ref(h.classes, "classId", "class", slot.ClassID)}
	if slot.RoomID != nil {
		refs = append(refs, ref(h.rooms, "roomId", "room", *slot.RoomID))
	}
	report, err := checkReferences(ctx, refs...)
	if err != nil {
		return nil, err
	}

	if err := slot.Validate(); err != nil {
		if report == nil {
			report = contract.NewReport()
		}
		report.Add(contract.NewFieldError(contract.CodeInvalidValue,
			"must be after startTime", validation.PartBody, "endTime"))
	}
	return report, nil
}

// conflict returns a report when slot's room is already booked for an
// overlapping time on the same day. It must run inside the transaction
// that writes slot.
func (h *ClassScheduleHandler) conflict(ctx context.Context, slot domain.ClassSchedule) (*contract.Report, error) {
	if slot.RoomID == nil {
		return nil, nil
	}
	q := store.Query{
		Where: map[string]any{"room_id": *slot.RoomID, "day_of_week": slot.DayOfWeek},
		Filters: []store.Filter{
			{Column: "start_time", Op: store.OpLt, Value: slot.EndTime},
			{Column: "end_time", Op: store.OpGt, Value: slot.StartTime},
		},
		Order: "start_time",
		Take:  1,
	}
	if slot.ID != 0 {
		q.Filters = append(q.Filters, store.Filter{Column: "id", Op: store.OpNe, Value: slot.ID})
	}

	clashes, err := h.schedules.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(clashes) == 0 || !slot.Overlaps(clashes[0]) {
		return nil, nil
	}

	other := clashes[0]
	return contract.NewReport(contract.NewFieldError(contract.CodeConflict,
		fmt.Sprintf("room %d is already booked on %s from %s to %s by class %d",
			*slot.RoomID, time.Weekday(slot.DayOfWeek), other.StartTime, other.EndTime, other.ClassID),
		validation.PartBody, "roomId")), nil
}

// save checks for room conflicts and writes slot atomically. A conflict
// is returned as a report.
func (h *ClassScheduleHandler) save(ctx context.Context, slot *domain.ClassSchedule) (*contract.Report, error) {
	var report *contract.Report
	err := h.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		report, err = h.conflict(ctx, *slot)
		if err != nil || report != nil {
			return err
		}
		if slot.ID == 0 {
			return h.schedules.Create(ctx, slot)
		}
		return h.schedules.Update(ctx, slot)
	})
	return report, err
}

func (h *ClassScheduleHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, ClassScheduleBody],
) (contract.Result, error) {
	slot := scheduleFromBody(0, in.Body)
	report, err := h.check(ctx, *slot)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	report, err = h.save(ctx, slot)
	if err != nil {
		return writeFailure(err, "class schedule")
	}
	if report != nil {
		return contract.BadRequest(report), nil
	}
	return contract.Created(slot), nil
}

func (h *ClassScheduleHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, ClassScheduleBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.schedules, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("class schedule", in.Path.ID), nil
	}

	slot := scheduleFromBody(in.Path.ID, in.Body)
	report, err := h.check(ctx, *slot)
	if err != nil || report != nil {
		return badRequestOr(report, err)
	}

	report, err = h.save(ctx, slot)
	if err != nil {
		return updateFailure(err, "class schedule", in.Path.ID)
	}
	if report != nil {
		return contract.BadRequest(report), nil
	}
	return contract.OK(slot), nil
}

func (h *ClassScheduleHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.schedules, "class schedule", in.Path.ID)
}

func scheduleFromBody(id int64, b ClassScheduleBody) *domain.ClassSchedule {
	return &domain.ClassSchedule{
		ID:        id,
		ClassID:   b.ClassID,
		RoomID:    b.RoomID,
		DayOfWeek: b.DayOfWeek,
		StartTime: domain.NormalizeTime(b.StartTime),
		EndTime:   domain.NormalizeTime(b.EndTime),
	}
}

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

// RoomBody is the request body of room writes.
type RoomBody struct {
	Code     string `json:"code" validate:"required,max=32" description:"Unique room code, such as CB01."`
	Building string `json:"building" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"min=1,max=2000" description:"Number of seats."`
}

// RoomListQuery filters the room collection.
type RoomListQuery struct {
	pagination.Query
	Building    string `query:"building" validate:"omitempty,max=100" description:"Only rooms of this building."`
	MinCapacity int    `query:"minCapacity" validate:"omitempty,min=1" description:"Only rooms with at least this many seats."`
}

var roomTags = []string{"Rooms"}

var (
	listRooms = contract.Contract[contract.Empty, RoomListQuery, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/rooms",
		OperationID: "listRooms",
		Summary:     "List rooms",
		Tags:        roomTags,
		Output:      listOutput[domain.Room](),
	}
	getRoom = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/rooms/{id}",
		OperationID: "getRoom",
		Summary:     "Get a room",
		Tags:        roomTags,
		Output:      getOutput[domain.Room](),
	}
	createRoom = contract.Contract[contract.Empty, contract.Empty, RoomBody]{
		Method:      http.MethodPost,
		Pattern:     "/rooms",
		OperationID: "createRoom",
		Summary:     "Create a room",
		Tags:        roomTags,
		Output:      createOutput[domain.Room](),
	}
	updateRoom = contract.Contract[IDPath, contract.Empty, RoomBody]{
		Method:      http.MethodPut,
		Pattern:     "/rooms/{id}",
		OperationID: "updateRoom",
		Summary:     "Replace a room",
		Tags:        roomTags,
		Output:      updateOutput[domain.Room](),
	}
	deleteRoom = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/rooms/{id}",
		OperationID: "deleteRoom",
		Summary:     "Delete a room with no scheduled class",
		Tags:        roomTags,
		Output:      deleteOutput(),
	}
)

// RoomHandler serves the rooms resource.
type RoomHandler struct {
	rooms store.Repository[domain.Room]
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms store.Repository[domain.Room]) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Module returns the bound room routes.
func (h *RoomHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "rooms",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listRooms, h.list),
			endpoint.NewRoute(getRoom, h.get),
			endpoint.NewRoute(createRoom, h.create),
			endpoint.NewRoute(updateRoom, h.update),
			endpoint.NewRoute(deleteRoom, h.delete),
		},
		Exceptions: publicReads("/rooms"),
	}
}

func (h *RoomHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, RoomListQuery, contract.Empty],
) (contract.Result, error) {
	q := store.Query{Order: "code"}
	if in.Query.Building != "" {
		q.Filters = append(q.Filters, store.Eq("building", in.Query.Building))
	}
	if in.Query.MinCapacity > 0 {
		q.Filters = append(q.Filters, store.Filter{Column: "capacity", Op: store.OpGte, Value: in.Query.MinCapacity})
	}
	return listPage(ctx, h.rooms, q, in.Query.Query)
}

func (h *RoomHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.rooms, "room", in.Path.ID)
}

func (h *RoomHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, RoomBody],
) (contract.Result, error) {
	room := &domain.Room{Code: in.Body.Code, Building: in.Body.Building, Capacity: in.Body.Capacity}
	if err := h.rooms.Create(ctx, room); err != nil {
		return writeFailure(err, "room", "code")
	}
	return contract.Created(room), nil
}

func (h *RoomHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, RoomBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.rooms, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("room", in.Path.ID), nil
	}

	room := &domain.Room{ID: in.Path.ID, Code: in.Body.Code, Building: in.Body.Building, Capacity: in.Body.Capacity}
	if err := h.rooms.Update(ctx, room); err != nil {
		return updateFailure(err, "room", in.Path.ID, "code")
	}
	return contract.OK(room), nil
}

func (h *RoomHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.rooms, "room", in.Path.ID)
}

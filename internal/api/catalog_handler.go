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

// CatalogBody is the request body of catalog writes.
type CatalogBody struct {
	Year int `json:"year" validate:"min=1960,max=2100" description:"Unique catalog year."`
}

var catalogTags = []string{"Catalogs"}

var (
	listCatalogs = contract.Contract[contract.Empty, pagination.Query, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/catalogs",
		OperationID: "listCatalogs",
		Summary:     "List catalogs",
		Tags:        catalogTags,
		Output:      listOutput[domain.Catalog](),
	}
	getCatalog = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodGet,
		Pattern:     "/catalogs/{id}",
		OperationID: "getCatalog",
		Summary:     "Get a catalog",
		Tags:        catalogTags,
		Output:      getOutput[domain.Catalog](),
	}
	createCatalog = contract.Contract[contract.Empty, contract.Empty, CatalogBody]{
		Method:      http.MethodPost,
		Pattern:     "/catalogs",
		OperationID: "createCatalog",
		Summary:     "Create a catalog",
		Tags:        catalogTags,
		Output:      createOutput[domain.Catalog](),
	}
	updateCatalog = contract.Contract[IDPath, contract.Empty, CatalogBody]{
		Method:      http.MethodPut,
		Pattern:     "/catalogs/{id}",
		OperationID: "updateCatalog",
		Summary:     "Replace a catalog",
		Tags:        catalogTags,
		Output:      updateOutput[domain.Catalog](),
	}
	deleteCatalog = contract.Contract[IDPath, contract.Empty, contract.Empty]{
		Method:      http.MethodDelete,
		Pattern:     "/catalogs/{id}",
		OperationID: "deleteCatalog",
		Summary:     "Delete an unused catalog",
		Tags:        catalogTags,
		Output:      deleteOutput(),
	}
)

// CatalogHandler serves the catalogs resource.
type CatalogHandler struct {
	catalogs store.Repository[domain.Catalog]
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogs store.Repository[domain.Catalog]) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// Module returns the bound catalog routes.
func (h *CatalogHandler) Module() endpoint.Module {
	return endpoint.Module{
		Name: "catalogs",
		Routes: []endpoint.Route{
			endpoint.NewRoute(listCatalogs, h.list),
			endpoint.NewRoute(getCatalog, h.get),
			endpoint.NewRoute(createCatalog, h.create),
			endpoint.NewRoute(updateCatalog, h.update),
			endpoint.NewRoute(deleteCatalog, h.delete),
		},
		Exceptions: publicReads("/catalogs"),
	}
}

func (h *CatalogHandler) list(
	ctx context.Context,
	in contract.Input[contract.Empty, pagination.Query, contract.Empty],
) (contract.Result, error) {
	return listPage(ctx, h.catalogs, store.Query{Order: "year desc"}, in.Query)
}

func (h *CatalogHandler) get(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return getOne(ctx, h.catalogs, "catalog", in.Path.ID)
}

func (h *CatalogHandler) create(
	ctx context.Context,
	in contract.Input[contract.Empty, contract.Empty, CatalogBody],
) (contract.Result, error) {
	catalog := &domain.Catalog{Year: in.Body.Year}
	if err := h.catalogs.Create(ctx, catalog); err != nil {
		return writeFailure(err, "catalog", "year")
	}
	return contract.Created(catalog), nil
}

func (h *CatalogHandler) update(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, CatalogBody],
) (contract.Result, error) {
	ok, err := exists(ctx, h.catalogs, in.Path.ID)
	if err != nil {
		return contract.Result{}, err
	}
	if !ok {
		return notFound("catalog", in.Path.ID), nil
	}

	catalog := &domain.Catalog{ID: in.Path.ID, Year: in.Body.Year}
	if err := h.catalogs.Update(ctx, catalog); err != nil {
		return updateFailure(err, "catalog", in.Path.ID, "year")
	}
	return contract.OK(catalog), nil
}

func (h *CatalogHandler) delete(
	ctx context.Context,
	in contract.Input[IDPath, contract.Empty, contract.Empty],
) (contract.Result, error) {
	return deleteOne(ctx, h.catalogs, "catalog", in.Path.ID)
}

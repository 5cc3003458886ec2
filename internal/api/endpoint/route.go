package endpoint

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/access"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
)

// Route is a bound operation ready to be mounted.
type Route struct {
	Operation contract.Operation
	Handler   http.HandlerFunc
}

// NewRoute binds fn to c.
func NewRoute[P, Q, B any](c contract.Contract[P, Q, B], fn Func[P, Q, B]) Route {
	return Route{
		Operation: c.Operation(),
		Handler:   Bind(c, fn),
	}
}

// Module groups the routes of one resource with its public exceptions.
type Module struct {
	Name       string
	Routes     []Route
	Exceptions *access.Registry
}

// Mount registers every route of modules on r.
func Mount(r chi.Router, modules ...Module) {
	for _, m := range modules {
		for _, route := range m.Routes {
			r.Method(route.Operation.Method, route.Operation.Pattern, route.Handler)
		}
	}
}

// Operations lists the operations of modules in mount order.
func Operations(modules ...Module) []contract.Operation {
	var ops []contract.Operation
	for _, m := range modules {
		for _, route := range m.Routes {
			ops = append(ops, route.Operation)
		}
	}
	return ops
}

// Exceptions merges the public exceptions of modules.
func Exceptions(modules ...Module) *access.Registry {
	registries := make([]*access.Registry, 0, len(modules))
	for _, m := range modules {
		registries = append(registries, m.Exceptions)
	}
	return access.Merge(registries...)
}

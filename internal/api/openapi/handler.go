package openapi

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handler serves the rendered document.
func Handler(doc []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(doc)
	})
}

// UIHandler serves Swagger UI for the document at specURL. It must be
// mounted on a wildcard route such as "/docs/*"; the page is index.html
// under that prefix and the UI assets are embedded.
func UIHandler(specURL string) http.Handler {
	return httpSwagger.Handler(httpSwagger.URL(specURL))
}

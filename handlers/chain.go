package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// chain wraps handler so that middlewares[0] runs first
func chain(handler http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

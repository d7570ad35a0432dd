package middleware

import (
	"net/http"

	"github.com/koenrh/sentry/appctx"
	"github.com/koenrh/sentry/core"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDPrefix = "req"
)

// RequestID tags every request with an id, reusing a well-formed incoming X-Request-ID
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !core.IsValidIDWithPrefix(requestID, requestIDPrefix) {
			requestID = core.NewID(requestIDPrefix)
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))
	})
}

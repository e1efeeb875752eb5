package sandbox

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/binlookup"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request id assigned by the sandbox, or
// an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a UUID v4,
// and echoes it on the response.
func requestIDMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(binlookup.RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(binlookup.RequestIDHeader, id)
			}

			w.Header().Set(binlookup.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

// recoveryMiddleware turns a handler panic into a 500 response.
func recoveryMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					klog.ErrorS(nil, "Handler panic", "panic", err, "path", r.URL.Path, "requestID", RequestIDFromContext(r.Context()))
					writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// logMiddleware traces each request at verbosity 2.
func logMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			klog.V(2).InfoS("Request", "method", r.Method, "path", r.URL.Path, "requestID", RequestIDFromContext(r.Context()))
			next.ServeHTTP(w, r)
		})
	}
}

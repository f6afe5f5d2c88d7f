package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// EchoRequestID copies the id chosen by chi's RequestID middleware onto the
// request and response X-Request-Id headers. The MCP transport only exposes
// request headers to tool handlers, so this is how dispatch logs see the id.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			r.Header.Set(chimw.RequestIDHeader, id)
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

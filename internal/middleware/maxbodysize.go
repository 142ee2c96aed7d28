package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that caps request body size at
// limit bytes.
//
// Requests advertising a Content-Length above the limit are rejected with
// HTTP 413 before any body bytes are read. Requests without a Content-Length
// get their body wrapped in http.MaxBytesReader, so a downstream read fails
// once the limit is crossed.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import "net/http"

// DefaultMaxBodyBytes caps JSON request bodies at 1 MiB.
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes rejects requests whose declared Content-Length exceeds limit with
// 413 and wraps the body so that reading past limit fails with
// *http.MaxBytesError for chunked uploads.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "Request body too large."})
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

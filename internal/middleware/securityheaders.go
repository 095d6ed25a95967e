package middleware

import "net/http"

// apiHeaders are set on every response. The API serves JSON only, so nothing
// may be framed, sniffed, cached or loaded from it.
var apiHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Referrer-Policy", "no-referrer"},
	{"Cache-Control", "no-store"},
}

// SecurityHeaders sets apiHeaders, plus HSTS when the server terminates TLS.
func SecurityHeaders(tls bool) func(http.Handler) http.Handler {
	headers := apiHeaders
	if tls {
		headers = append(headers[:len(headers):len(headers)],
			[2]string{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range headers {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

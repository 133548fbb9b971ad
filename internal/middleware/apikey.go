package middleware

import "net/http"

// APIKey returns middleware that gates a route behind the shared API
// key, supplied as an apiKey query parameter.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("apiKey") != key {
				writeJSONError(w, http.StatusUnauthorized,
					`You need to provide a valid "apiKey" query parameter to access this route`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

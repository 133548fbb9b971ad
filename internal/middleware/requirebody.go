package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

const maxBodySize = 1 << 20 // 1MB

// RequireJSONBody rejects requests whose body is missing, not a JSON
// object, or an empty object. Write endpoints treat such requests as
// no-ops worth a 400 rather than silently doing nothing.
func RequireJSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil || len(obj) == 0 {
			writeJSONError(w, http.StatusBadRequest,
				"Calling this route with an empty request body (JSON) is a no-op.")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

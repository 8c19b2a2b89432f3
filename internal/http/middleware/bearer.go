package middleware

import (
	"net/http"
	"strings"

	"github.com/clinicops/backoffice/internal/backend"
)

// BearerToken lifts the inbound Authorization bearer token onto the request
// context so backend calls forward it verbatim. The token is never inspected
// here; accepting or rejecting it is the backend's job.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			if token = strings.TrimSpace(token); token != "" {
				r = r.WithContext(backend.WithToken(r.Context(), token))
			}
		}
		next.ServeHTTP(w, r)
	})
}

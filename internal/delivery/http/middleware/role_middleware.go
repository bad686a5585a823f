package middleware

import (
	"net/http"

	"medical-calculator-backend/pkg/response"
)

// RequireMedical gates clinician-only endpoints. The user is read from
// context (set by AuthMiddleware).
func RequireMedical(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User information not found")
			return
		}

		if !user.IsClinician() {
			response.Forbidden(w, "Medical staff access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperuser gates administrative endpoints.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User information not found")
			return
		}

		if !user.IsSuperuser {
			response.Forbidden(w, "Superuser access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

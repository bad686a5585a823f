package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-calculator-backend/internal/domain/entity"
)

func requestWithUser(user *entity.User) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	if user == nil {
		return r
	}
	ctx := context.WithValue(r.Context(), UserKey, user)
	return r.WithContext(ctx)
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireMedical(t *testing.T) {
	tests := []struct {
		name       string
		user       *entity.User
		wantStatus int
		wantNext   bool
	}{
		{"no user in context", nil, http.StatusUnauthorized, false},
		{"patient", &entity.User{IsMedical: false}, http.StatusForbidden, false},
		{"clinician", &entity.User{IsMedical: true}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			w := httptest.NewRecorder()

			RequireMedical(next).ServeHTTP(w, requestWithUser(tt.user))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if *called != tt.wantNext {
				t.Errorf("next called = %v, want %v", *called, tt.wantNext)
			}
		})
	}
}

func TestRequireSuperuser(t *testing.T) {
	tests := []struct {
		name       string
		user       *entity.User
		wantStatus int
		wantNext   bool
	}{
		{"no user in context", nil, http.StatusUnauthorized, false},
		{"regular clinician", &entity.User{IsMedical: true}, http.StatusForbidden, false},
		{"superuser", &entity.User{IsSuperuser: true}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			w := httptest.NewRecorder()

			RequireSuperuser(next).ServeHTTP(w, requestWithUser(tt.user))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if *called != tt.wantNext {
				t.Errorf("next called = %v, want %v", *called, tt.wantNext)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("empty list allows any origin", func(t *testing.T) {
		next, _ := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Origin", "http://example.com")

		NewCORSMiddleware("").Handle(next).ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		next, _ := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Origin", "http://app.local")

		NewCORSMiddleware("http://app.local, http://other.local").Handle(next).ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.local" {
			t.Errorf("Allow-Origin = %q, want http://app.local", got)
		}
	})

	t.Run("unlisted origin gets no header", func(t *testing.T) {
		next, _ := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Origin", "http://evil.local")

		NewCORSMiddleware("http://app.local").Handle(next).ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		next, called := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/", nil)

		NewCORSMiddleware("").Handle(next).ServeHTTP(w, r)

		if *called {
			t.Error("OPTIONS request should not reach the next handler")
		}
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

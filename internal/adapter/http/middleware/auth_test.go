package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/infrastructure/auth"
)

func ownerEcho(t *testing.T, got *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := OwnerFromContext(r.Context())
		if !ok {
			t.Fatal("expected owner in context")
		}
		*got = owner
	})
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := manager.Generate(&domain.User{ID: "user-42", Email: "u@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var owner string
	h := AuthMiddleware(manager)(ownerEcho(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if owner != "user-42" {
		t.Fatalf("expected owner user-42, got %s", owner)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	other := auth.NewJWTManager("other-secret", time.Hour)
	foreign, _, err := other.Generate(&domain.User{ID: "user-42"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"foreign signature", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestStaticOwner(t *testing.T) {
	var owner string
	rec := httptest.NewRecorder()
	StaticOwner("local")(ownerEcho(t, &owner)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if owner != "local" {
		t.Fatalf("expected owner local, got %s", owner)
	}
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernet/fernet-go"

	"tradediary/internal/api/middleware"
	"tradediary/internal/config"
	"tradediary/internal/service"
)

func newAuthService(t *testing.T, key string) *service.AuthService {
	t.Helper()

	authService, err := service.NewAuthService(config.AuthConfig{
		Key:      key,
		Username: "admin",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	return authService
}

func generateKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

func TestRequireToken(t *testing.T) {
	testHandler := func(called *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			*called = true
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("passes everything through when no key is configured", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.RequireToken(newAuthService(t, ""))(testHandler(&handlerCalled))

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if !handlerCalled {
			t.Error("Expected request to reach the handler.")
		}
	})

	t.Run("rejects request without a token", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.RequireToken(newAuthService(t, generateKey(t)))(testHandler(&handlerCalled))

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects request with a garbage token", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.RequireToken(newAuthService(t, generateKey(t)))(testHandler(&handlerCalled))

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set(middleware.TokenHeader, "not-a-token")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("accepts request with a freshly issued token", func(t *testing.T) {
		authService := newAuthService(t, generateKey(t))
		token, err := authService.Login("admin", "secret")
		if err != nil {
			t.Fatalf("Failed to log in: %v", err)
		}

		handlerCalled := false
		mw := middleware.RequireToken(authService)(testHandler(&handlerCalled))

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set(middleware.TokenHeader, token)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if !handlerCalled {
			t.Error("Expected request to reach the handler.")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})
}

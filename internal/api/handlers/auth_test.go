package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernet/fernet-go"

	"tradediary/internal/api/request"
	"tradediary/internal/config"
	"tradediary/internal/service"
	"tradediary/internal/testutil"
)

func setupAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	authService, err := service.NewAuthService(config.AuthConfig{
		Key:      key.Encode(),
		Username: "admin",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	return NewAuthHandler(authService)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		handler := setupAuthHandler(t)

		body := request.LoginRequest{Username: "admin", Password: "secret"}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/auth/login", nil, body)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response LoginResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Token == "" {
			t.Error("Expected a non-empty token")
		}
	})

	t.Run("rejects wrong credentials", func(t *testing.T) {
		handler := setupAuthHandler(t)

		body := request.LoginRequest{Username: "admin", Password: "wrong"}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/auth/login", nil, body)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}

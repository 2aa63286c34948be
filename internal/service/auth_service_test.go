package service_test

import (
	"errors"
	"testing"

	"github.com/fernet/fernet-go"

	"tradediary/internal/apperrors"
	"tradediary/internal/config"
	"tradediary/internal/service"
)

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return config.AuthConfig{
		Key:      key.Encode(),
		Username: "admin",
		Password: "secret",
	}
}

// TestAuthService tests the login token round trip.
//
// WHY: A token the service issues must verify against the same key, and
// everything else (wrong credentials, garbage tokens, disabled auth) must
// fail closed or pass through as configured.
func TestAuthService(t *testing.T) {
	t.Run("issued token verifies", func(t *testing.T) {
		svc, err := service.NewAuthService(testAuthConfig(t))
		if err != nil {
			t.Fatalf("NewAuthService() returned unexpected error: %v", err)
		}

		token, err := svc.Login("admin", "secret")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("Expected a non-empty token")
		}

		if err := svc.VerifyToken(token); err != nil {
			t.Errorf("VerifyToken() rejected a fresh token: %v", err)
		}
	})

	t.Run("wrong credentials are rejected", func(t *testing.T) {
		svc, err := service.NewAuthService(testAuthConfig(t))
		if err != nil {
			t.Fatalf("NewAuthService() returned unexpected error: %v", err)
		}

		if _, err := svc.Login("admin", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := svc.Login("root", "secret"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc, err := service.NewAuthService(testAuthConfig(t))
		if err != nil {
			t.Fatalf("NewAuthService() returned unexpected error: %v", err)
		}

		if err := svc.VerifyToken("not-a-token"); !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("empty key disables the service", func(t *testing.T) {
		svc, err := service.NewAuthService(config.AuthConfig{})
		if err != nil {
			t.Fatalf("NewAuthService() returned unexpected error: %v", err)
		}

		if svc.Enabled() {
			t.Error("Expected auth to be disabled without a key")
		}
		if err := svc.VerifyToken("anything"); err != nil {
			t.Errorf("Expected disabled auth to accept any token, got %v", err)
		}
		if _, err := svc.Login("admin", "secret"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected login to fail when auth is disabled, got %v", err)
		}
	})
}

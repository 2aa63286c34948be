package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"tradediary/internal/apperrors"
	"tradediary/internal/config"
)

// tokenTTL is how long an issued login token stays valid.
const tokenTTL = 12 * time.Hour

// AuthService issues and verifies fernet login tokens. When no auth key is
// configured the service is disabled and every route stays open.
type AuthService struct {
	key      *fernet.Key
	username string
	password string
}

// NewAuthService creates an AuthService from the auth configuration. An empty
// key yields a disabled service.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if cfg.Key == "" {
		return &AuthService{}, nil
	}

	key, err := fernet.DecodeKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key: %w", err)
	}

	return &AuthService{
		key:      key,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

// Enabled reports whether the login gate is active.
func (s *AuthService) Enabled() bool {
	return s.key != nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.Enabled() {
		return "", apperrors.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := fernet.EncryptAndSign([]byte(username), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return string(token), nil
}

// VerifyToken checks a token's signature and age.
func (s *AuthService) VerifyToken(token string) error {
	if !s.Enabled() {
		return nil
	}

	msg := fernet.VerifyAndDecrypt([]byte(token), tokenTTL, []*fernet.Key{s.key})
	if msg == nil {
		return apperrors.ErrInvalidToken
	}
	return nil
}

package jwt

import (
	"testing"
	"time"

	"scholaria/backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-at-least-16-chars",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 168 * time.Hour,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "professor")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("expected UserID=user-001, got %s", claims.UserID)
	}
	if claims.Role != "professor" {
		t.Errorf("expected Role=professor, got %s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected TokenType=access, got %s", claims.TokenType)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	m := newTestManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "student")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := m.GenerateAccessToken("user-001", "student")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_GenerateRefreshToken_RememberMe(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken("user-001", "director", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected TokenType=refresh, got %s", claims.TokenType)
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 100*time.Hour {
		t.Errorf("remember-me refresh token should outlive the default TTL, remaining=%v", remaining)
	}
}

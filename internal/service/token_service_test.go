package service

import (
	"errors"
	"testing"
	"time"

	"pagecraft/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:         "u1",
		UserName:   "Test",
		Email:      "user@example.com",
		SignupType: domain.SignupEmail,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestTokenService_GenerateParseAccess(t *testing.T) {
	svc := NewTokenService("secret", 15*time.Minute, 30*time.Minute, time.Hour)

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_TypeMismatch(t *testing.T) {
	svc := NewTokenService("secret", 15*time.Minute, 30*time.Minute, time.Hour)

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	// Un refresh token no sirve como access token, y viceversa.
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh-as-access, got %v", err)
	}

	reset, err := svc.GenerateResetToken(testUser())
	if err != nil {
		t.Fatalf("generate reset: %v", err)
	}
	if _, err := svc.ParseAccessToken(reset); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for reset-as-access, got %v", err)
	}
	if _, err := svc.ParseResetToken(reset); err != nil {
		t.Fatalf("parse reset: %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", 15*time.Minute, 30*time.Minute, time.Hour)
	svc.accessTTL = -time.Minute

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService("secret", 15*time.Minute, 30*time.Minute, time.Hour)
	other := NewTokenService("other-secret", 15*time.Minute, 30*time.Minute, time.Hour)

	pair, err := other.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong signature, got %v", err)
	}
}

func TestTokenService_RefreshRotation(t *testing.T) {
	svc := NewTokenServiceWithStore("secret", 15*time.Minute, 30*time.Minute, time.Hour, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	refreshed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("expected refreshed tokens")
	}

	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected old refresh token to be revoked")
	}
}

func TestTokenService_RevokeRefresh(t *testing.T) {
	svc := NewTokenServiceWithStore("secret", 15*time.Minute, 30*time.Minute, time.Hour, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke refresh: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected revoked refresh token to be rejected")
	}
}

func TestTokenService_EmptySecret(t *testing.T) {
	svc := NewTokenService("", 15*time.Minute, 30*time.Minute, time.Hour)
	if _, err := svc.GeneratePair(testUser()); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without secret, got %v", err)
	}
}

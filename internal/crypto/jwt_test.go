package crypto

import (
	"testing"
	"time"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 24*time.Hour)
}

func TestGenerateAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty string")
	}
}

func TestValidateAccessTokenValid(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("expected IsAdmin to round-trip")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty token ID")
	}
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() unexpected error: %v", err)
	}

	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Error("a refresh token must not validate as an access token")
	}
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Error("an access token must not validate as a refresh token")
	}
}

func TestValidateAccessTokenInvalid(t *testing.T) {
	m := newTestManager()

	if _, err := m.ValidateAccessToken("not-a-valid-token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Millisecond, 24*time.Hour)

	token, err := m.GenerateAccessToken(42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestRefreshTokensHaveUniqueIDs(t *testing.T) {
	m := newTestManager()

	t1, err := m.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() unexpected error: %v", err)
	}
	t2, err := m.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() unexpected error: %v", err)
	}

	c1, err := m.ValidateRefreshToken(t1)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() unexpected error: %v", err)
	}
	c2, err := m.ValidateRefreshToken(t2)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() unexpected error: %v", err)
	}

	if c1.ID == c2.ID {
		t.Error("two refresh tokens for the same user must carry distinct IDs")
	}
}

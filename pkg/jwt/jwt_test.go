package jwt

import (
	"testing"
	"time"

	"medical-calculator-backend/config"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       secret,
		AccessExpiry: 30 * time.Minute,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService("test-secret")

	token, tokenID, err := service.GenerateToken("dr.house")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token id")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != "dr.house" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "dr.house")
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService("test-secret")

	token, _, err := service.GenerateTokenWithTTL("dr.house", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateTokenWithTTL() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := newTestService("secret-a")
	verifier := newTestService("secret-b")

	token, _, err := issuer.GenerateToken("dr.house")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	service := newTestService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := service.ValidateToken(token); err == nil {
			t.Errorf("token %q should not validate", token)
		}
	}
}

func TestValidateEmptySubject(t *testing.T) {
	service := newTestService("test-secret")

	token, _, err := service.GenerateToken("")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("token without a subject should not validate")
	}
}

package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devconnect/social-network/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if id != "user123" {
		t.Fatalf("expected user123, got %s", id)
	}
}

func TestTokenService_Issue_NoSecret(t *testing.T) {
	svc := NewTokenService("", time.Hour)
	if _, err := svc.Issue("user123"); err == nil {
		t.Fatalf("expected error when secret is missing")
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"user": map[string]any{"id": "user123"},
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_MissingIdentityClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
